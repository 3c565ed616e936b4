package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("// x\n"), 0644))
}

func TestWalkFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "src/b.tsx")
	touch(t, root, "src/a.ts")
	touch(t, root, "src/util.spec.ts")
	touch(t, root, "src/types.d.ts")
	touch(t, root, "src/readme.md")
	touch(t, root, "node_modules/pkg/index.js")
	touch(t, root, "dist/bundle.js")
	touch(t, root, "app.js")

	paths, err := Walk(root, nil, nil)
	require.NoError(t, err)

	rel := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rel[i] = r
	}

	assert.Equal(t, []string{"app.js", filepath.Join("src", "a.ts"), filepath.Join("src", "b.tsx")}, rel)
}

func TestWalkIncludeGlob(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.ts")
	touch(t, root, "b.tsx")

	paths, err := Walk(root, []string{"*.tsx"}, nil)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, "b.tsx", filepath.Base(paths[0]))
}

func TestWalkCustomIgnore(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "src/a.ts")
	touch(t, root, "generated/g.ts")

	paths, err := Walk(root, nil, []string{"generated"})
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, "a.ts", filepath.Base(paths[0]))
}

func TestWalkInvalidIncludePattern(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.ts")

	_, err := Walk(root, []string{"[broken"}, nil)

	assert.Error(t, err)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), nil, nil)

	assert.Error(t, err)
}

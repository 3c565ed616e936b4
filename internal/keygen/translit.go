package keygen

// translitMap maps Cyrillic runes to Latin sequences. Multi-letter expansions
// are allowed; runes absent from the map pass through unchanged. The mapping
// is fixed: changing it would rename every generated key.
var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate converts Cyrillic characters in s to their Latin expansions.
func Transliterate(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if seq, ok := translitMap[r]; ok {
			out = append(out, []rune(seq)...)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

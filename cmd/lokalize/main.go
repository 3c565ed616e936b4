// Command lokalize extracts hardcoded strings from JS/TS sources and
// manages their translations.
package main

import "lokalize/internal/cli"

func main() {
	cli.Execute()
}

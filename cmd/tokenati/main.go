// tokenati dumps and checks JavaScript/TypeScript token streams, resolving
// the ambiguities a single-pass tokenizer meets: regex literals versus
// division, template nesting, statement versus expression braces.
package main

import (
	"log/slog"
	"os"

	"tokenati/cmd/tokenati/command"
)

func main() {
	if err := command.Root.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

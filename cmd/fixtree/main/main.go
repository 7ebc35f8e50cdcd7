package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fixtree/cmd/fixtree"
	"github.com/arthur-debert/fixtree/pkg/ui"
)

func main() {
	rootCmd := fixtree.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := ui.Resolve(ui.FormatAuto, os.Stderr)
		fmt.Fprintln(os.Stderr, ui.Styled("Error", fmt.Sprintf("Error: %v", err), format))
		os.Exit(1)
	}
}

// Command yo is the CLI entry point for the yo semantic middle-end: manifest
// inspection, cache dumping, and an interactive type-resolution REPL.
//
// Grounded on surge/cmd/surge/main.go's rootCmd/persistent-flags/isTerminal
// shape.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"yo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "yo",
	Short: "yo semantic middle-end toolchain",
	Long:  `yo drives the type interner, callable registry, and call resolver over an already-parsed module.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpSymbolsCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal, used
// to resolve --color=auto.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// wantColor resolves the root --color flag against isTerminal(os.Stdout),
// the same colorFlag/useColor pattern surge/cmd/surge/diagnose.go reads via
// cmd.Root().PersistentFlags().
func wantColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		colorFlag = "auto"
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

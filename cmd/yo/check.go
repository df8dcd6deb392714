package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yo/internal/config"
)

// checkCmd validates a yo.toml manifest is well-formed and reports the
// entry module and search paths a ModuleLoader would resolve `use`
// directives against. It stops short of driving internal/driver: parsing the
// entry module's source is outside this middle-end's scope, so `check` only
// exercises the config layer, not a full compilation.
var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate a yo.toml manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		manifest, ok, err := config.Load(dir)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no %s found above %s", config.ManifestFile, dir)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "manifest: %s\n", manifest.Path)
		fmt.Fprintf(out, "package:  %s\n", manifest.Config.Package.Name)
		fmt.Fprintf(out, "entry:    %s\n", manifest.EntryPath())
		fmt.Fprintln(out, "search paths:")
		for _, p := range manifest.SearchPaths() {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return nil
	},
}

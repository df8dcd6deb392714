package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"yo/internal/cache"
	"yo/internal/report"
)

var moduleHeaderStyle = lipgloss.NewStyle().Bold(true)

var (
	dumpSymbolsCacheDir string
	dumpSymbolsModule   string
)

func init() {
	dumpSymbolsCmd.Flags().StringVar(&dumpSymbolsCacheDir, "cache-dir", ".yo-cache", "directory a snapshot was written to")
	dumpSymbolsCmd.Flags().StringVar(&dumpSymbolsModule, "module", "", "module name the snapshot was stored under")
}

// dumpSymbolsCmd renders a previously written internal/cache snapshot as a
// table, one row per registered callable. It never re-runs elaboration —
// the snapshot is debug tooling written by a host embedding internal/driver,
// not something this CLI can produce on its own without a parser.
var dumpSymbolsCmd = &cobra.Command{
	Use:   "dump-symbols",
	Short: "Print a cached symbol-table snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dumpSymbolsModule == "" {
			return fmt.Errorf("--module is required")
		}
		store, err := cache.Open(dumpSymbolsCacheDir)
		if err != nil {
			return err
		}
		snap, ok, err := store.Get(dumpSymbolsModule)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no snapshot for module %q under %s", dumpSymbolsModule, dumpSymbolsCacheDir)
		}

		header := fmt.Sprintf("module: %s (%d callables)", snap.Module, len(snap.Callables))
		if wantColor(cmd) {
			header = moduleHeaderStyle.Render(header)
		}
		fmt.Fprintln(cmd.OutOrStdout(), header)

		rows := make([][]string, len(snap.Callables))
		for i, c := range snap.Callables {
			kind := "fn"
			if c.Template {
				kind = "template"
			}
			mangled := c.Mangled
			if mangled == "" {
				mangled = "-"
			}
			rows[i] = []string{c.Canonical, mangled, c.RetTypeName, kind}
		}
		report.Table(cmd.OutOrStdout(), []string{"canonical", "mangled", "returns", "kind"}, rows)
		return nil
	},
}

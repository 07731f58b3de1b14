package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search interactively in the terminal",
	Long: `Tui opens a full-screen search box. Type a description of the course
you want and press Enter; results replace the loading placeholder and can
be scrolled with the arrow keys. Press Esc to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	store := openHistory(cfg.History)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(context.Background(), tui.Options{
		Searcher:    backend.NewClient(cfg.Backend),
		Catalog:     cfg.Catalog,
		History:     recorder(store),
		Warn:        os.Stderr,
		Placeholder: cfg.Server.Placeholder,
	})
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pathfinder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export previously submitted searches",
	Long: `History lists the queries submitted from any pathfinder client, newest
first, with the number of courses each returned. Only the queries are
logged; results are always fetched fresh.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")
	historyCmd.Flags().String("grep", "", "only list queries containing this text")
	historyCmd.Flags().String("export", "", "write the full log to the history directory: yaml or json")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	export, _ := cmd.Flags().GetString("export")
	switch export {
	case "":
	case "yaml", "json":
		var path string
		if export == "yaml" {
			path, err = store.ExportYAML(ctx)
		} else {
			path, err = store.ExportJSON(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported history to", path)
		return nil
	default:
		return fmt.Errorf("unknown export format %q: use yaml or json", export)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	grep, _ := cmd.Flags().GetString("grep")

	var entries []history.Entry
	if grep != "" {
		entries, err = store.Grep(ctx, grep, limit)
	} else {
		entries, err = store.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	history.FormatTable(entries, os.Stdout)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/history"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search for courses matching a description",
	Long: `Search sends the query to the course search service once and prints
the matching courses. Words from the query are set in bold wherever they
appear in a course; with --plain they are wrapped in asterisks instead.

Example:
  pathfinder search 3 credit programming course taught by Gries`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output the raw course records as JSON")
	searchCmd.Flags().Bool("plain", false, "disable terminal styling")
	searchCmd.Flags().Bool("exact", false, "highlight the query only as a whole phrase")
	searchCmd.Flags().Int("clip", 0, "shorten descriptions to N words around each match (0 keeps everything)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	query := strings.Join(args, " ")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")
	exact, _ := cmd.Flags().GetBool("exact")
	clip, _ := cmd.Flags().GetInt("clip")

	store := openHistory(cfg.History)
	if store != nil {
		defer store.Close()
	}

	ctx := context.Background()
	st := session.New()
	st.SetInput(query)
	req, err := st.Submit()
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.Backend)
	courses, searchErr := client.Search(ctx, req.Query)
	if store != nil {
		e := history.Entry{Query: req.Query, Results: len(courses), Source: history.SourceCLI}
		if searchErr != nil {
			e.Error = searchErr.Error()
		}
		if err := store.Record(ctx, e); err != nil {
			warnf("recording history: %v", err)
		}
	}
	if searchErr != nil {
		st.Fail(req, searchErr)
		return describeSearchError(st.Err())
	}
	st.Resolve(req, courses)

	if jsonOutput {
		return render.FormatJSON(st.Results(), os.Stdout)
	}

	term := render.NewTerminal(os.Stdout, plain)
	term.WriteCards(os.Stdout, st.Cards(render.Options{
		Catalog: cfg.Catalog,
		Exact:   exact,
		ClipBy:  clip,
	}))
	return nil
}

// describeSearchError adds a hint for failures the user can act on.
func describeSearchError(err error) error {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == 401 {
		return fmt.Errorf("%w (check .secrets/%s)", err, backendTokenKey)
	}
	return err
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	Long: `Serve runs the search page. Pressing Enter in the search box shows a
loading placeholder, then the matching courses or "No results found".
Without JavaScript the page still works through plain form submission.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "localhost:8080", "listen address")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	store := openHistory(cfg.History)
	if store != nil {
		defer store.Close()
	}

	srv, err := web.NewServer(web.Options{
		Config:   cfg.Server,
		Catalog:  cfg.Catalog,
		Searcher: backend.NewClient(cfg.Backend),
		History:  recorder(store),
		Log:      os.Stderr,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

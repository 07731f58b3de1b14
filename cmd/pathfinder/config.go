package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/history"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/pkg/types"
)

const (
	defaultUserAgent = "pathfinder/0.1"
	backendTokenKey  = "backend-token"
)

func setDefaults() {
	viper.SetDefault("backend.url", backend.DefaultURL)
	viper.SetDefault("backend.timeout", "30s")
	viper.SetDefault("backend.max_retries", 3)
	viper.SetDefault("catalog.term", render.DefaultCatalog.Term)
	viper.SetDefault("catalog.base_url", render.DefaultCatalog.BaseURL)
	viper.SetDefault("serve.addr", "localhost:8080")
	viper.SetDefault("serve.placeholder", "")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dir", defaultHistoryDir())
}

func defaultHistoryDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pathfinder")
	}
	return ".pathfinder"
}

// loadConfig assembles the client settings from flags, environment,
// config file and secrets, in that order of precedence.
func loadConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		Backend: types.BackendConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("backend.timeout"),
				UserAgent: defaultUserAgent,
			},
			URL:        viper.GetString("backend.url"),
			Token:      secretDefault(backendTokenKey, viper.GetString("backend.token")),
			MaxRetries: viper.GetInt("backend.max_retries"),
		},
		Catalog: types.CatalogConfig{
			Term:    viper.GetString("catalog.term"),
			BaseURL: viper.GetString("catalog.base_url"),
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("serve.addr"),
			Placeholder: viper.GetString("serve.placeholder"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Dir:     viper.GetString("history.dir"),
		},
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}
	return cfg
}

// openHistory opens the search log when it is enabled. A log that cannot
// be opened is reported and skipped; searching still works without it.
func openHistory(cfg types.HistoryConfig) *history.Store {
	if !cfg.Enabled {
		return nil
	}
	store, err := history.NewStore(cfg)
	if err != nil {
		warnf("history disabled: %v", err)
		return nil
	}
	return store
}

// recorder returns store as a Recorder, keeping a nil store a nil interface.
func recorder(store *history.Store) history.Recorder {
	if store == nil {
		return nil
	}
	return store
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pathfinder CLI: a course search
// client that runs as a one-shot command, an interactive terminal screen,
// or a web page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// secretDefault returns fallback if set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	return loadedSecrets.Get(key, fallback)
}

// rootCmd is the base command for the pathfinder CLI.
var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Find courses by describing what you want",
	Long: `pathfinder sends a natural-language query to the course search service
and shows the matching courses with the query terms highlighted.

Use "search" for a one-off query, "tui" for an interactive search screen,
or "serve" to run the search page in a browser. Submitted queries are
logged locally and can be listed with "history".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Names())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pathfinder.yaml or ~/.config/pathfinder/pathfinder.yaml)")
	pf.String("backend", backend.DefaultURL, "search service base URL")
	pf.Duration("timeout", 30*time.Second, "HTTP request timeout")
	pf.String("term", render.DefaultCatalog.Term, "class roster term used for course links")
	pf.Bool("no-history", false, "do not log submitted queries")

	viper.BindPFlag("backend.url", pf.Lookup("backend"))
	viper.BindPFlag("backend.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("catalog.term", pf.Lookup("term"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pathfinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pathfinder"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("PATHFINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

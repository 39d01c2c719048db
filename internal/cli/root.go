// Package cli provides the command-line interface for yelpcrawl.
package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/crawlworks/yelpcrawl/internal/app"
	"github.com/crawlworks/yelpcrawl/internal/config"
)

// globalApp is the shared Application for the running command.
var globalApp *app.Application

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yelpcrawl",
	Short: "Scrape Yelp businesses and reviews through a hosted scraping API",
	Long: `Yelpcrawl queries Yelp's search, business-detail, and review-feed
endpoints through a hosted scraping proxy API, extracts structured fields,
and paginates until exhaustion. Proxying, header rotation, and anti-bot
work are the API's responsibility; this tool handles extraction,
pagination, and merging.`,
	Version: "0.1.0",
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Initialize the application lazily, and only for commands that scrape.
	// Credential management must work before any API key exists.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if globalApp != nil || !needsApp(cmd) {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}
		appCtx, err := app.New(cfg)
		if err != nil {
			return err
		}
		globalApp = appCtx
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if globalApp != nil {
			globalApp.Close()
			globalApp = nil
		}
	}
}

func needsApp(cmd *cobra.Command) bool {
	path := cmd.CommandPath()
	return !strings.Contains(path, "auth") && cmd.Name() != "help"
}

package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON to stderr")
	cmd.PersistentFlags().String("api-key", "", "Scraping API key (overrides env and stored credential)")
	cmd.PersistentFlags().IntP("concurrency", "c", DefaultConcurrency, "Maximum in-flight API requests")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Hard timeout per API request")
	cmd.PersistentFlags().String("country", DefaultCountry, "Proxy country passed to the scraping API")
	cmd.PersistentFlags().Bool("no-asp", false, "Disable the service's anti-scraping-protection bypass")
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/crawlworks/yelpcrawl/internal/utils/output"
)

var (
	searchOutput string
	searchFormat string
	previewsOnly bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword> <location>",
	Short: "Scrape business records for a search keyword and location",
	Long: `Search scrapes every page of a Yelp search and then the detail page of
each business found, printing the merged record set as a JSON array on
stdout. First-page results come first; later pages follow in the order
their fetches complete.`,
	Example: `  # All bars in Kinnelon, New Jersey
  yelpcrawl search Bar "Kinnelon, New Jersey"

  # Previews only (no detail-page fetches), saved to a file
  yelpcrawl search Bar "Kinnelon, New Jersey" --previews -o bars.json

  # CSV export
  yelpcrawl search Bar "Kinnelon, New Jersey" -o bars.csv --format csv`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "File path to save output (stdout when empty)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "Output format: json or csv")
	searchCmd.Flags().BoolVar(&previewsOnly, "previews", false, "Stop after search pages; skip business-detail fetches")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword, location := args[0], args[1]
	scraper := globalApp.Scraper

	bar := newProgressBar("scraping search")
	scraper.Progress = func(done, total int) {
		bar.ChangeMax(total)
		bar.Set(done)
	}
	defer bar.Finish()

	ctx := cmd.Context()

	if previewsOnly {
		previews, err := scraper.Search(ctx, keyword, location)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		bar.Finish()
		log.Info().Int("businesses", len(previews)).Msg("search complete")
		if searchOutput != "" {
			return output.SaveJSON(previews, searchOutput)
		}
		return output.PrintJSON(os.Stdout, previews)
	}

	businesses, err := scraper.BusinessesBySearch(ctx, keyword, location)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	bar.Finish()
	log.Info().Int("businesses", len(businesses)).Msg("search complete")

	records := output.BusinessesJSON(businesses)
	switch {
	case searchOutput == "":
		return output.PrintJSON(os.Stdout, records)
	case strings.EqualFold(searchFormat, "csv"):
		return output.SaveBusinessCSV(records, searchOutput)
	default:
		return output.SaveJSON(records, searchOutput)
	}
}

// newProgressBar builds a stderr progress bar that stays out of the way of
// the JSON written to stdout.
func newProgressBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}

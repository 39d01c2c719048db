package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/crawlworks/yelpcrawl/internal/utils/output"
	urlutil "github.com/crawlworks/yelpcrawl/internal/utils/url"
)

var (
	reviewsOutput string
	reviewsFormat string
)

// reviewsCmd represents the reviews command
var reviewsCmd = &cobra.Command{
	Use:   "reviews <business-url>",
	Short: "Scrape every review of a business",
	Long: `Reviews fetches a business page, reads its business identifier from the
page metadata, and scrapes the full review feed page by page, printing
the reviews as a JSON array on stdout.`,
	Example: `  yelpcrawl reviews https://www.yelp.com/biz/some-bar-kinnelon

  # CSV export
  yelpcrawl reviews https://www.yelp.com/biz/some-bar-kinnelon -o reviews.csv --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReviews,
}

func init() {
	rootCmd.AddCommand(reviewsCmd)

	reviewsCmd.Flags().StringVarP(&reviewsOutput, "output", "o", "", "File path to save output (stdout when empty)")
	reviewsCmd.Flags().StringVar(&reviewsFormat, "format", "json", "Output format: json or csv")
}

func runReviews(cmd *cobra.Command, args []string) error {
	businessURL := args[0]
	if err := urlutil.ValidateURL(businessURL); err != nil {
		return err
	}

	scraper := globalApp.Scraper

	bar := newProgressBar("scraping reviews")
	scraper.Progress = func(done, total int) {
		bar.ChangeMax(total)
		bar.Set(done)
	}
	defer bar.Finish()

	reviews, err := scraper.Reviews(cmd.Context(), businessURL)
	if err != nil {
		return fmt.Errorf("review scrape failed: %w", err)
	}
	bar.Finish()
	log.Info().Int("reviews", len(reviews)).Msg("review scrape complete")

	records := output.ReviewsJSON(reviews)
	switch {
	case reviewsOutput == "":
		return output.PrintJSON(os.Stdout, records)
	case strings.EqualFold(reviewsFormat, "csv"):
		return output.SaveReviewCSV(records, reviewsOutput)
	default:
		return output.SaveJSON(records, reviewsOutput)
	}
}

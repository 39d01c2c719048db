// Package yelp implements the target-site specifics: endpoint URLs, field
// extraction from search/detail/review documents, pagination arithmetic,
// and the aggregation of paginated fetches into flat record sequences.
package yelp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/crawlworks/yelpcrawl/internal/fetch"
	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// Scraper aggregates paginated fetches through a fetch client. The first
// page of any sequence is fetched alone to learn the total count; the rest
// go out as one batch. Merged output keeps first-page records first and
// appends later pages in completion order, without deduplication.
type Scraper struct {
	client fetch.Fetcher

	// Progress, when set, is called as pages complete with the number of
	// pages done and the total page count. Used by the CLI progress bar.
	Progress func(done, total int)
}

// NewScraper creates a Scraper on top of a fetch client.
func NewScraper(client fetch.Fetcher) *Scraper {
	return &Scraper{client: client}
}

func (s *Scraper) progress(done, total int) {
	if s.Progress != nil {
		s.Progress(done, total)
	}
}

// Search scrapes every page of a keyword/location search and returns the
// business previews found.
func (s *Scraper) Search(ctx context.Context, keyword, location string) ([]models.SearchPreview, error) {
	first, err := s.client.Fetch(ctx, SearchURL(keyword, location, 0))
	if err != nil {
		return nil, fmt.Errorf("search first page: %w", err)
	}

	previews, total, err := ParseSearch(first.Body)
	if err != nil {
		return nil, fmt.Errorf("search first page: %w", err)
	}

	offsets := SearchOffsets(total)
	pages := len(offsets) + 1
	s.progress(1, pages)

	log.Info().
		Str("keyword", keyword).
		Str("location", location).
		Int("total_results", total).
		Int("pages", pages).
		Msg("search pagination discovered")

	if len(offsets) == 0 {
		return previews, nil
	}

	urls := make([]string, len(offsets))
	for i, offset := range offsets {
		urls[i] = SearchURL(keyword, location, offset)
	}

	done := 1
	for result := range fetch.FetchBatch(ctx, s.client, urls) {
		if result.Err != nil {
			return nil, fmt.Errorf("search page %s: %w", result.URL, result.Err)
		}
		pagePreviews, err := ParseSearchPreviews(result.Body)
		if err != nil {
			return nil, fmt.Errorf("search page %s: %w", result.URL, err)
		}
		previews = append(previews, pagePreviews...)
		done++
		s.progress(done, pages)
	}

	return previews, nil
}

// BusinessesByURL scrapes business-detail records for the given business
// page URLs. Records arrive in fetch-completion order.
func (s *Scraper) BusinessesByURL(ctx context.Context, urls []string) ([]models.Business, error) {
	var businesses []models.Business

	done := 0
	for result := range fetch.FetchBatch(ctx, s.client, urls) {
		if result.Err != nil {
			return nil, fmt.Errorf("business page %s: %w", result.URL, result.Err)
		}
		business, err := ParseBusiness(result.Body)
		if err != nil {
			return nil, fmt.Errorf("business page %s: %w", result.URL, err)
		}
		businesses = append(businesses, *business)
		done++
		s.progress(done, len(urls))
	}

	return businesses, nil
}

// BusinessesBySearch runs a search and scrapes the detail record of every
// business it finds.
func (s *Scraper) BusinessesBySearch(ctx context.Context, keyword, location string) ([]models.Business, error) {
	previews, err := s.Search(ctx, keyword, location)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(previews))
	for _, preview := range previews {
		if preview.URL != "" {
			urls = append(urls, preview.URL)
		}
	}

	log.Info().Int("businesses", len(urls)).Msg("scraping business details")
	return s.BusinessesByURL(ctx, urls)
}

// Reviews scrapes every page of a business's review feed. The business
// identifier is read from the detail page's metadata tag.
func (s *Scraper) Reviews(ctx context.Context, businessURL string) ([]models.Review, error) {
	page, err := s.client.Fetch(ctx, businessURL)
	if err != nil {
		return nil, fmt.Errorf("business page: %w", err)
	}
	businessID, err := BusinessIDFromPage(page.Body)
	if err != nil {
		return nil, err
	}

	first, err := s.client.Fetch(ctx, ReviewFeedURL(businessID, 0))
	if err != nil {
		return nil, fmt.Errorf("review feed first page: %w", err)
	}
	reviews, total, err := ParseReviewFeed(first.Body, businessID)
	if err != nil {
		return nil, err
	}

	offsets := ReviewOffsets(total)
	pages := len(offsets) + 1
	s.progress(1, pages)

	log.Info().
		Str("business_id", businessID).
		Int("total_reviews", total).
		Int("pages", pages).
		Msg("scraping review feed")

	if len(offsets) == 0 {
		return reviews, nil
	}

	urls := make([]string, len(offsets))
	for i, offset := range offsets {
		urls[i] = ReviewFeedURL(businessID, offset)
	}

	done := 1
	for result := range fetch.FetchBatch(ctx, s.client, urls) {
		if result.Err != nil {
			return nil, fmt.Errorf("review feed %s: %w", result.URL, result.Err)
		}
		pageReviews, _, err := ParseReviewFeed(result.Body, businessID)
		if err != nil {
			return nil, fmt.Errorf("review feed %s: %w", result.URL, err)
		}
		reviews = append(reviews, pageReviews...)
		done++
		s.progress(done, pages)
	}

	return reviews, nil
}

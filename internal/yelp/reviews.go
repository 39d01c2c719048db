package yelp

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/crawlworks/yelpcrawl/internal/extract"
	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// ErrMissingBusinessID is returned when a business page carries no biz-id
// meta tag, leaving the review feed unreachable.
var ErrMissingBusinessID = errors.New("business page has no yelp-biz-id meta tag")

// BusinessIDFromPage reads the business identifier from a detail page's
// metadata tag.
func BusinessIDFromPage(body []byte) (string, error) {
	doc, err := extract.NewDoc(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse business page: %w", err)
	}
	id := doc.Attr(`meta[name="yelp-biz-id"]`, "content")
	if id == "" {
		return "", ErrMissingBusinessID
	}
	return id, nil
}

// ReviewFeedURL builds the review-feed endpoint URL for one page of a
// business's reviews.
func ReviewFeedURL(businessID string, offset int) string {
	return fmt.Sprintf("%s/biz/%s/review_feed?rl=en&q=&sort_by=relevance_desc&start=%d",
		BaseURL, businessID, offset)
}

// ParseReviewFeed extracts the reviews and the total review count from one
// review-feed JSON page. Comment HTML is converted to markdown; individual
// missing fields degrade to zero values.
func ParseReviewFeed(body []byte, businessID string) ([]models.Review, int, error) {
	doc, err := extract.ParseJSON(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse review feed: %w", err)
	}

	var reviews []models.Review
	doc.ForEach("reviews", func(item gjson.Result) bool {
		bizID := item.Get("business.id").String()
		if bizID == "" {
			bizID = businessID
		}
		reviews = append(reviews, models.Review{
			ID:         item.Get("id").String(),
			UserID:     item.Get("userId").String(),
			Author:     item.Get("user.markupDisplayName").String(),
			BusinessID: bizID,
			Comment:    CommentMarkdown(item.Get("comment.text").String()),
			Language:   item.Get("comment.language").String(),
			Rating:     int(item.Get("rating").Int()),
			Date:       item.Get("localizedDate").String(),
		})
		return true
	})

	return reviews, doc.Int("pagination.totalResults"), nil
}

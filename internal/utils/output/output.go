// Package output writes scraped record sets to stdout or to files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// PrintJSON writes v as an indented JSON document to w. A nil slice prints
// as an empty array so consumers always see valid JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// SaveJSON writes v as indented JSON to filepath.
func SaveJSON(v any, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return PrintJSON(file, v)
}

// BusinessesJSON marshals businesses, normalizing nil to an empty array.
func BusinessesJSON(businesses []models.Business) []models.Business {
	if businesses == nil {
		return []models.Business{}
	}
	return businesses
}

// ReviewsJSON marshals reviews, normalizing nil to an empty array.
func ReviewsJSON(reviews []models.Review) []models.Review {
	if reviews == nil {
		return []models.Review{}
	}
	return reviews
}

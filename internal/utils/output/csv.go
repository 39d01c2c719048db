package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// SaveBusinessCSV writes business records to a CSV file. Open hours are
// flattened into one column as "day=hours" pairs in weekday order of the
// sorted keys.
func SaveBusinessCSV(businesses []models.Business, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"name", "website", "phone", "address", "logo", "open_hours", "claim_status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, b := range businesses {
		row := []string{
			b.Name, b.Website, b.Phone, b.Address, b.Logo,
			flattenHours(b.OpenHours), b.ClaimStatus,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

// SaveReviewCSV writes review records to a CSV file.
func SaveReviewCSV(reviews []models.Review, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "user_id", "author", "business_id", "rating", "date", "language", "comment"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range reviews {
		row := []string{
			r.ID, r.UserID, r.Author, r.BusinessID,
			strconv.Itoa(r.Rating), r.Date, r.Language, r.Comment,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

func flattenHours(hours map[string]string) string {
	if len(hours) == 0 {
		return ""
	}
	keys := make([]string, 0, len(hours))
	for k := range hours {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+hours[k])
	}
	return strings.Join(parts, "; ")
}

package models

// SearchPreview is a lightweight reference to a business found on a search
// results page. It only lives long enough for its URL to be resolved; the
// full record comes from the business-detail page.
type SearchPreview struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	ReviewCount int     `json:"review_count,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// Business is a structured business-detail record. It is created once per
// detail-page fetch and never mutated afterwards.
type Business struct {
	Name        string            `json:"name"`
	Website     string            `json:"website"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	Logo        string            `json:"logo"`
	OpenHours   map[string]string `json:"open_hours"`
	ClaimStatus string            `json:"claim_status"`
}

// Review is a single entry from a business review feed. Comment text is
// converted from the feed's HTML fragment to markdown before storage.
type Review struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Author     string `json:"author"`
	BusinessID string `json:"business_id"`
	Comment    string `json:"comment"`
	Language   string `json:"language,omitempty"`
	Rating     int    `json:"rating"`
	Date       string `json:"date,omitempty"`
}

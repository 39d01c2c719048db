package yelp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crawlworks/yelpcrawl/internal/extract"
	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// businessRules are the flat fields of a business-detail page. Selectors
// mirror the page's info sidebar; any of them may stop matching when the
// site ships new markup, in which case the field degrades to "".
var businessRules = map[string]extract.Rule{
	"name":         {Selector: "h1"},
	"website":      {Selector: `p:contains("Business website") + p a`},
	"phone":        {Selector: `p:contains("Phone number") + p`},
	"logo":         {Selector: `img[class*="businessLogo"]`, Attr: "src"},
	"claim_status": {Selector: `span[class*="claim-text"]`, Join: true, Lower: true},
}

// ParseBusiness extracts a business record from a detail-page HTML body.
// Missing fields come back empty rather than failing the record.
func ParseBusiness(body []byte) (*models.Business, error) {
	doc, err := extract.NewDoc(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse business page: %w", err)
	}

	fields := doc.Fields(businessRules)

	// The address sits in the paragraph after the "Get Directions" link's
	// container, which CSS alone cannot reach.
	var address string
	doc.Each(`a:contains("Get Directions")`, func(s *goquery.Selection) {
		if address == "" {
			address = strings.TrimSpace(s.Parent().NextAllFiltered("p").First().Text())
		}
	})

	// Open hours are a table of day-label cells paired with hour cells in
	// the same row, keyed by lower-cased weekday name.
	hours := doc.PairedText(`th p[class*="day-of-the-week"]`, func(label *goquery.Selection) string {
		return label.Parent().NextAllFiltered("td").First().Find("p").First().Text()
	})

	return &models.Business{
		Name:        fields["name"],
		Website:     fields["website"],
		Phone:       fields["phone"],
		Address:     address,
		Logo:        fields["logo"],
		OpenHours:   hours,
		ClaimStatus: fields["claim_status"],
	}, nil
}

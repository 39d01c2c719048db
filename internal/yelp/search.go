package yelp

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/crawlworks/yelpcrawl/internal/extract"
	urlutil "github.com/crawlworks/yelpcrawl/internal/utils/url"
	"github.com/crawlworks/yelpcrawl/pkg/models"
)

// BaseURL is the target site root; business URLs from search results are
// resolved against it.
const BaseURL = "https://www.yelp.com"

// ErrNoPagination is returned when the search response carries no
// pagination metadata record, which means the total result count cannot
// be discovered.
var ErrNoPagination = errors.New("no pagination metadata record in search results")

// SearchURL builds the search-snippet endpoint URL for one page.
func SearchURL(keyword, location string, offset int) string {
	q := url.Values{}
	q.Set("find_desc", keyword)
	q.Set("find_loc", location)
	q.Set("start", strconv.Itoa(offset))
	q.Set("parent_request", "")
	q.Set("ns", "1")
	q.Set("request_origin", "user")
	return BaseURL + "/search/snippet?" + q.Encode()
}

const searchItemsPath = "searchPageProps.mainContentComponentsListProps"

// ParseSearch extracts business previews and the total result count from a
// search-snippet JSON response. Organic results are the entries carrying a
// searchResultBusiness and no ad-logging payload. The pagination record is
// located by an explicit linear scan; if it is absent, ErrNoPagination is
// returned along with whatever previews were found.
func ParseSearch(body []byte) ([]models.SearchPreview, int, error) {
	previews, doc, err := parsePreviews(body)
	if err != nil {
		return nil, 0, err
	}

	meta, ok := doc.FindFirst(searchItemsPath, func(item gjson.Result) bool {
		return item.Get("type").String() == "pagination"
	})
	if !ok {
		return previews, 0, ErrNoPagination
	}

	return previews, int(meta.Get("props.totalResults").Int()), nil
}

// ParseSearchPreviews extracts only the business previews. Used for pages
// past the first, where the pagination record is not needed and may be
// absent.
func ParseSearchPreviews(body []byte) ([]models.SearchPreview, error) {
	previews, _, err := parsePreviews(body)
	return previews, err
}

func parsePreviews(body []byte) ([]models.SearchPreview, *extract.JSONDoc, error) {
	doc, err := extract.ParseJSON(body)
	if err != nil {
		return nil, nil, err
	}

	var previews []models.SearchPreview
	doc.ForEach(searchItemsPath, func(item gjson.Result) bool {
		biz := item.Get("searchResultBusiness")
		if !biz.Exists() || item.Get("adLoggingInfo").Exists() {
			return true
		}
		href := biz.Get("businessUrl").String()
		preview := models.SearchPreview{
			Name:        biz.Get("name").String(),
			ReviewCount: int(biz.Get("reviewCount").Int()),
			Rating:      biz.Get("rating").Float(),
		}
		if href != "" {
			preview.URL = urlutil.ResolveURL(BaseURL, href)
		}
		previews = append(previews, preview)
		return true
	})
	return previews, doc, nil
}

package yelp

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

const searchPageJSON = `{
	"searchPageProps": {
		"mainContentComponentsListProps": [
			{"type": "separator"},
			{
				"searchResultBusiness": {
					"name": "The Black Horse Tavern",
					"businessUrl": "/biz/black-horse-tavern-kinnelon",
					"reviewCount": 152,
					"rating": 4.5
				}
			},
			{
				"searchResultBusiness": {
					"name": "Sponsored Spot",
					"businessUrl": "/biz/sponsored-spot"
				},
				"adLoggingInfo": {"slot": 1}
			},
			{
				"searchResultBusiness": {
					"name": "Smoke Rise Tap House",
					"businessUrl": "/biz/smoke-rise-tap-house-kinnelon",
					"reviewCount": 87,
					"rating": 4.0
				}
			},
			{"type": "pagination", "props": {"totalResults": 25, "startResult": 0}}
		]
	}
}`

func TestParseSearch(t *testing.T) {
	previews, total, err := ParseSearch([]byte(searchPageJSON))
	if err != nil {
		t.Fatalf("ParseSearch failed: %v", err)
	}

	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(previews) != 2 {
		t.Fatalf("expected 2 organic previews (ads filtered), got %d", len(previews))
	}
	if previews[0].Name != "The Black Horse Tavern" {
		t.Errorf("previews[0].Name = %q", previews[0].Name)
	}
	if previews[0].URL != BaseURL+"/biz/black-horse-tavern-kinnelon" {
		t.Errorf("previews[0].URL = %q, want absolute URL", previews[0].URL)
	}
	if previews[1].ReviewCount != 87 || previews[1].Rating != 4.0 {
		t.Errorf("previews[1] metadata = %+v", previews[1])
	}
}

func TestParseSearch_NoPagination(t *testing.T) {
	body := `{"searchPageProps": {"mainContentComponentsListProps": [
		{"searchResultBusiness": {"name": "Lone Result", "businessUrl": "/biz/lone"}}
	]}}`

	previews, _, err := ParseSearch([]byte(body))
	if !errors.Is(err, ErrNoPagination) {
		t.Fatalf("expected ErrNoPagination, got %v", err)
	}
	if len(previews) != 1 {
		t.Errorf("expected previews alongside the error, got %d", len(previews))
	}
}

func TestParseSearch_InvalidJSON(t *testing.T) {
	if _, _, err := ParseSearch([]byte("<html>not json</html>")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseSearchPreviews_ToleratesMissingPagination(t *testing.T) {
	body := `{"searchPageProps": {"mainContentComponentsListProps": [
		{"searchResultBusiness": {"name": "Page Two Bar", "businessUrl": "/biz/page-two"}}
	]}}`

	previews, err := ParseSearchPreviews([]byte(body))
	if err != nil {
		t.Fatalf("ParseSearchPreviews failed: %v", err)
	}
	if len(previews) != 1 || previews[0].Name != "Page Two Bar" {
		t.Errorf("previews = %+v", previews)
	}
}

func TestSearchURL(t *testing.T) {
	raw := SearchURL("Bar", "Kinnelon, New Jersey", 20)

	if !strings.HasPrefix(raw, BaseURL+"/search/snippet?") {
		t.Fatalf("unexpected endpoint: %s", raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("SearchURL produced unparseable URL: %v", err)
	}
	q := parsed.Query()
	if q.Get("find_desc") != "Bar" {
		t.Errorf("find_desc = %q", q.Get("find_desc"))
	}
	if q.Get("find_loc") != "Kinnelon, New Jersey" {
		t.Errorf("find_loc = %q", q.Get("find_loc"))
	}
	if q.Get("start") != "20" {
		t.Errorf("start = %q", q.Get("start"))
	}
	if q.Get("request_origin") != "user" || q.Get("ns") != "1" {
		t.Errorf("boilerplate params missing: %s", raw)
	}
}

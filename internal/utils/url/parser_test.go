package urlutil

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://www.yelp.com/biz/alpha", true},
		{"http://example.com", true},
		{"ftp://example.com/file", false},
		{"not a url at all", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.valid && err != nil {
				t.Errorf("ValidateURL(%q) = %v, want nil", tt.url, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateURL(%q) = nil, want error", tt.url)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		href string
		want string
	}{
		{"https://www.yelp.com", "/biz/alpha", "https://www.yelp.com/biz/alpha"},
		{"https://www.yelp.com/search", "https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"https://www.yelp.com/biz/", "photos", "https://www.yelp.com/biz/photos"},
	}

	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

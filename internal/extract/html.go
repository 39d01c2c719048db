// Package extract provides tolerant field extraction from HTML and JSON
// documents. Lookups that find nothing return zero values, never errors;
// scraped markup is unversioned and selectors are expected to go stale.
package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Doc wraps a parsed HTML document with query helpers that degrade
// gracefully when a selector matches nothing.
type Doc struct {
	doc *goquery.Document
}

// NewDoc parses HTML from r. Parsing is the only operation that can fail;
// every query on the resulting Doc is infallible.
func NewDoc(r io.Reader) (*Doc, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Doc{doc: doc}, nil
}

// NewDocFromString parses HTML from a string.
func NewDocFromString(html string) (*Doc, error) {
	return NewDoc(strings.NewReader(html))
}

// Text returns the trimmed text of the first match, or "".
func (d *Doc) Text(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// JoinedText returns the concatenated trimmed text of all matches, or "".
func (d *Doc) JoinedText(selector string) string {
	var sb strings.Builder
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})
	return strings.TrimSpace(sb.String())
}

// Attr returns the named attribute of the first match, or "".
func (d *Doc) Attr(selector, attr string) string {
	v, _ := d.doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}

// Each iterates over all matches of selector.
func (d *Doc) Each(selector string, fn func(s *goquery.Selection)) {
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		fn(s)
	})
}

// Rule describes how to extract one named field. If Attr is set the
// attribute value is taken instead of text; Join concatenates all matches;
// Lower lower-cases the result.
type Rule struct {
	Selector string
	Attr     string
	Join     bool
	Lower    bool
}

// Fields applies a set of named rules and returns a field-name to value
// mapping. Fields whose selector matches nothing map to "".
func (d *Doc) Fields(rules map[string]Rule) map[string]string {
	out := make(map[string]string, len(rules))
	for name, r := range rules {
		var v string
		switch {
		case r.Attr != "":
			v = d.Attr(r.Selector, r.Attr)
		case r.Join:
			v = d.JoinedText(r.Selector)
		default:
			v = d.Text(r.Selector)
		}
		if r.Lower {
			v = strings.ToLower(v)
		}
		out[name] = v
	}
	return out
}

// PairedText walks label matches and pairs each with a value resolved
// relative to the label node. Labels are lower-cased and used as map keys;
// pairs with an empty label are skipped. This is the shape of open-hours
// tables: one label cell per row, the value in a sibling cell.
func (d *Doc) PairedText(labelSelector string, value func(label *goquery.Selection) string) map[string]string {
	out := make(map[string]string)
	d.doc.Find(labelSelector).Each(func(_ int, label *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(label.Text()))
		if key == "" {
			return
		}
		out[key] = strings.TrimSpace(value(label))
	})
	return out
}

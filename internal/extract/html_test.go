package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const fixtureHTML = `<html><body>
	<h1> Spot Name </h1>
	<img class="logo" src="https://cdn.example.com/logo.png">
	<span class="flag">Open</span><span class="flag">Now</span>
	<table>
		<tr><th><p class="day">Mon</p></th><td><p>9-5</p></td></tr>
		<tr><th><p class="day">Tue</p></th><td><p>9-6</p></td></tr>
	</table>
</body></html>`

func mustDoc(t *testing.T, html string) *Doc {
	t.Helper()
	doc, err := NewDocFromString(html)
	if err != nil {
		t.Fatalf("NewDocFromString failed: %v", err)
	}
	return doc
}

func TestDocText(t *testing.T) {
	doc := mustDoc(t, fixtureHTML)

	if got := doc.Text("h1"); got != "Spot Name" {
		t.Errorf("Text(h1) = %q", got)
	}
	if got := doc.Text(".does-not-exist"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
}

func TestDocAttr(t *testing.T) {
	doc := mustDoc(t, fixtureHTML)

	if got := doc.Attr("img.logo", "src"); got != "https://cdn.example.com/logo.png" {
		t.Errorf("Attr = %q", got)
	}
	if got := doc.Attr("img.logo", "missing"); got != "" {
		t.Errorf("Attr(missing attribute) = %q, want empty", got)
	}
	if got := doc.Attr(".nope", "src"); got != "" {
		t.Errorf("Attr(missing selector) = %q, want empty", got)
	}
}

func TestDocJoinedText(t *testing.T) {
	doc := mustDoc(t, fixtureHTML)

	if got := doc.JoinedText("span.flag"); got != "OpenNow" {
		t.Errorf("JoinedText = %q", got)
	}
}

func TestDocFields(t *testing.T) {
	doc := mustDoc(t, fixtureHTML)

	fields := doc.Fields(map[string]Rule{
		"name":   {Selector: "h1"},
		"logo":   {Selector: "img.logo", Attr: "src"},
		"flags":  {Selector: "span.flag", Join: true, Lower: true},
		"absent": {Selector: ".missing"},
	})

	if fields["name"] != "Spot Name" {
		t.Errorf("name = %q", fields["name"])
	}
	if fields["logo"] != "https://cdn.example.com/logo.png" {
		t.Errorf("logo = %q", fields["logo"])
	}
	if fields["flags"] != "opennow" {
		t.Errorf("flags = %q", fields["flags"])
	}
	if fields["absent"] != "" {
		t.Errorf("absent = %q, want empty", fields["absent"])
	}
}

func TestDocPairedText(t *testing.T) {
	doc := mustDoc(t, fixtureHTML)

	pairs := doc.PairedText("th p.day", func(label *goquery.Selection) string {
		return label.Parent().NextAllFiltered("td").First().Find("p").First().Text()
	})

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %v", len(pairs), pairs)
	}
	if pairs["mon"] != "9-5" || pairs["tue"] != "9-6" {
		t.Errorf("pairs = %v", pairs)
	}
	for key := range pairs {
		if key != strings.ToLower(key) {
			t.Errorf("key %q not lower-cased", key)
		}
	}
}

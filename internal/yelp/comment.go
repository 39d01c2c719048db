package yelp

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

var commentConverter = newCommentConverter()

func newCommentConverter() *md.Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return converter
}

// CommentMarkdown converts a review comment's HTML fragment to markdown.
// The fragment is sanitized first; if conversion fails the plain text of
// the fragment is returned so a malformed comment never loses its body.
func CommentMarkdown(fragment string) string {
	if fragment == "" {
		return ""
	}

	cleaned, err := sanitizeComment(fragment)
	if err == nil {
		if converted, mdErr := commentConverter.ConvertString(cleaned); mdErr == nil {
			return strings.TrimSpace(converted)
		} else {
			log.Debug().Err(mdErr).Msg("markdown conversion failed, falling back to plain text")
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

// sanitizeComment strips active content and all attributes except link
// targets from a comment fragment.
func sanitizeComment(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, iframe, form, input, button").Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			if node.Data == "a" && (attr.Key == "href" || attr.Key == "title") {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

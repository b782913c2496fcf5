package domain

import (
	"regexp"
	"strings"
)

// BOM feeds are inconsistently escaped: some items wrap fields in CDATA,
// some don't, and the occasional block carries attributes or stray
// whitespace inside the tags. Extraction therefore runs on the raw feed
// text with tolerant patterns instead of a conformant XML parser, and any
// block that yields no title is skipped rather than failing the feed.
var (
	itemBlockRe = regexp.MustCompile(`(?is)<item>(.*?)</item>`)

	// Title patterns, tried in order. First hit wins.
	titleCDATARe = regexp.MustCompile(`(?is)<title><!\[CDATA\[(.*?)\]\]></title>`)
	titleBareRe  = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	titleLooseRe = regexp.MustCompile(`(?is)<title[^>]*>\s*(.*?)\s*</title>`)

	descCDATARe = regexp.MustCompile(`(?is)<description><!\[CDATA\[(.*?)\]\]></description>`)
	descBareRe  = regexp.MustCompile(`(?is)<description>(.*?)</description>`)
	linkRe      = regexp.MustCompile(`(?is)<link>(.*?)</link>`)
	pubDateRe   = regexp.MustCompile(`(?is)<pubDate>(.*?)</pubDate>`)

	cdataRe = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
)

// ParseFeed extracts warning items from raw feed text. It never fails:
// malformed input yields fewer items, not an error. Items without an
// extractable title and cancellation notices are dropped. Output order
// matches the order of item blocks in the input.
func ParseFeed(feedText string) []RawFeedItem {
	var items []RawFeedItem

	for _, block := range itemBlockRe.FindAllStringSubmatch(feedText, -1) {
		content := block[1]

		title := extractTitle(content)
		if title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(title), "cancellation") {
			continue
		}

		items = append(items, RawFeedItem{
			Title:       title,
			Description: extractFirst(content, descCDATARe, descBareRe),
			Link:        extractFirst(content, linkRe),
			PubDate:     extractFirst(content, pubDateRe),
		})
	}

	return items
}

// extractTitle tries the three title patterns in order: CDATA wrapper,
// bare tag, then the permissive form that tolerates attributes and
// whitespace and unwraps any inline CDATA.
func extractTitle(content string) string {
	if m := titleCDATARe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titleBareRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titleLooseRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(cdataRe.ReplaceAllString(m[1], "$1"))
	}
	return ""
}

// extractFirst returns the trimmed first submatch of the first pattern that
// matches, or "".
func extractFirst(content string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

package domain

import (
	"regexp"
	"strings"
)

// typeKeywords maps title substrings to warning types, most specific first.
// A multi-keyword entry matches if any of its keywords appear.
var typeKeywords = []struct {
	keywords []string
	wtype    WarningType
}{
	{keywords: []string{"severe thunderstorm", "hail", "damaging wind"}, wtype: TypeSevereThunderstorm},
	{keywords: []string{"flood"}, wtype: TypeFlood},
	{keywords: []string{"fire"}, wtype: TypeFireWeather},
	{keywords: []string{"wind"}, wtype: TypeWind},
	{keywords: []string{"rain"}, wtype: TypeHeavyRain},
	{keywords: []string{"cyclone"}, wtype: TypeCyclone},
	{keywords: []string{"surf"}, wtype: TypeSurf},
	{keywords: []string{"sheep"}, wtype: TypeSheepGraziers},
}

// ClassifyWarningType derives a warning type from the title. Keywords are
// matched case-insensitively by substring containment, in table order;
// titles matching nothing classify as General.
func ClassifyWarningType(title string) WarningType {
	lower := strings.ToLower(title)
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.wtype
			}
		}
	}
	return TypeGeneral
}

// Severity keyword tiers. "severe" outranks "hail": a severe thunderstorm
// warning that mentions hail is Severe, not High.
var (
	severeKeywords = []string{"severe", "destructive", "dangerous"}
	highKeywords   = []string{"hail", "damaging"}
)

// ClassifySeverity derives a severity from the title, defaulting to
// Moderate when no keyword matches.
func ClassifySeverity(title string) Severity {
	lower := strings.ToLower(title)
	for _, kw := range severeKeywords {
		if strings.Contains(lower, kw) {
			return SeveritySevere
		}
	}
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return SeverityHigh
		}
	}
	return SeverityModerate
}

// actWordRe matches "act" as a standalone word so "Forecast for the ACT"
// matches but "exact" and "activity" do not.
var actWordRe = regexp.MustCompile(`\bact\b`)

// IsRelevant decides whether a feed item pertains to the target region.
// The ACT has no feed of its own and shares NSW's, so ACT items must
// mention the territory (as a word), Canberra, the formal territory name,
// or the resolved location name. Every other region's feed is already
// region-specific and passes everything through.
func IsRelevant(item RawFeedItem, region Region, locationName string) bool {
	if region != RegionACT {
		return true
	}

	fullText := strings.ToLower(item.Title + " " + item.Description)

	if actWordRe.MatchString(fullText) {
		return true
	}
	if strings.Contains(fullText, "canberra") {
		return true
	}
	if strings.Contains(fullText, "australian capital territory") {
		return true
	}
	return locationName != "" && strings.Contains(fullText, strings.ToLower(locationName))
}

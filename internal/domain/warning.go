package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Region is one of the eight Australian states and territories covered by
// the BOM warning feeds.
type Region string

const (
	RegionNSW Region = "NSW"
	RegionVIC Region = "VIC"
	RegionQLD Region = "QLD"
	RegionSA  Region = "SA"
	RegionWA  Region = "WA"
	RegionTAS Region = "TAS"
	RegionNT  Region = "NT"
	RegionACT Region = "ACT"
)

// WarningType labels a warning by hazard, derived from title keywords.
type WarningType string

const (
	TypeSevereThunderstorm WarningType = "Severe Thunderstorm"
	TypeFlood              WarningType = "Flood"
	TypeFireWeather        WarningType = "Fire Weather"
	TypeWind               WarningType = "Wind"
	TypeHeavyRain          WarningType = "Heavy Rain"
	TypeCyclone            WarningType = "Cyclone"
	TypeSurf               WarningType = "Surf"
	TypeSheepGraziers      WarningType = "Sheep Graziers"
	TypeGeneral            WarningType = "General"
)

// Severity is a three-level urgency label derived from title keywords.
type Severity string

const (
	SeveritySevere   Severity = "Severe"
	SeverityHigh     Severity = "High"
	SeverityModerate Severity = "Moderate"
)

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawFeedItem is one item block extracted from a warning feed.
// Title is always non-empty; the remaining fields default to "" when the
// feed omits them. PubDate is kept in the feed's native date format.
type RawFeedItem struct {
	Title       string
	Description string
	Link        string
	PubDate     string
}

// Warning is a classified, deduplicated alert built from one feed item.
// Warnings are rebuilt from scratch every check cycle and never mutated.
type Warning struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Link        string      `json:"link"`
	Region      Region      `json:"state"`
	PubDate     string      `json:"pub_date,omitempty"`
	Type        WarningType `json:"type"`
	Severity    Severity    `json:"severity"`
	Origin      string      `json:"origin"`
}

// CheckResult is the per-cycle summary persisted for the UI collaborator.
type CheckResult struct {
	CheckedAt    time.Time `json:"last_check"`
	AlertCount   int       `json:"alert_count"`
	Region       Region    `json:"state,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Warnings     []Warning `json:"warnings"`
	DebugLog     []string  `json:"debug_log,omitempty"`
}

// maxDescriptionLen caps the description carried on a Warning.
const maxDescriptionLen = 300

// BuildWarning converts a parsed feed item into a classified Warning.
// The item's link doubles as the warning ID; link-less items get a
// deterministic synthesized ID so the same warning dedupes across cycles,
// and their link falls back to the region's warnings page.
func BuildWarning(item RawFeedItem, region Region, fallbackLink string) Warning {
	id := item.Link
	if id == "" {
		id = synthesizeID(region, item)
	}

	link := item.Link
	if link == "" {
		link = fallbackLink
	}

	desc := item.Description
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}

	return Warning{
		ID:          id,
		Title:       item.Title,
		Description: desc,
		Link:        link,
		Region:      region,
		PubDate:     item.PubDate,
		Type:        ClassifyWarningType(item.Title),
		Severity:    ClassifySeverity(item.Title),
		Origin:      "feed",
	}
}

// synthesizeID produces a deterministic ID for items without a link.
// Hashing region|title|pubDate keeps the ID stable across cycles so the
// notified-set comparison still suppresses repeats.
func synthesizeID(region Region, item RawFeedItem) string {
	input := fmt.Sprintf("%s|%s|%s", region, item.Title, item.PubDate)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s-%s", region, hex.EncodeToString(hash[:8]))
}

// Package domain models Australian Bureau of Meteorology (BOM) weather
// warnings and the pure logic of the check pipeline: region classification,
// tolerant feed parsing, warning classification, deduplication, and the
// notification decision.
//
// # Data Source
//
// BOM publishes one warning RSS feed per state and territory under
// http://www.bom.gov.au/fwo/. The ACT has no feed of its own and shares the
// NSW feed, which is why ACT items need a relevance filter ([IsRelevant]).
//
// # Feed Conventions
//
// The feeds are RSS-shaped but inconsistently escaped. Observed variants:
//
//	<title>Flood Warning for the Bellinger River</title>
//	<title><![CDATA[Severe Thunderstorm Warning]]></title>
//	<title type="text">
//	  <![CDATA[Marine Wind Warning]]>
//	</title>
//
// [ParseFeed] therefore matches item blocks and fields with tolerant
// patterns on the raw text rather than parsing a document tree; a block
// that yields no title is skipped and the rest of the feed still parses.
// Items whose title contains "cancellation" announce the withdrawal of an
// earlier warning and are dropped.
//
// # Region Classification
//
// A coordinate inside the continental bounding box (lat -44..-10,
// lon 113..154) maps to a state via ordered bounding boxes, ACT before NSW
// because the territory is nested inside the NSW box. Coordinates missing
// every box (coastal waters, box seams) fall through to a longitude/latitude
// heuristic, so [ClassifyRegion] is total over the continental box.
//
// # Classification
//
// Warning type and severity are keyword scans over the title only, first
// match wins:
//
//	Type:     severe thunderstorm/hail/damaging wind | flood | fire | wind |
//	          rain | cyclone | surf | sheep | (General)
//	Severity: severe/destructive/dangerous → Severe
//	          hail/damaging               → High
//	          otherwise                   → Moderate
//
// Note the ordering consequence: a title with both "severe" and "hail" is
// Severe, and its type is Severe Thunderstorm.
//
// # IDs and Deduplication
//
// A warning's ID is its feed link. Link-less items get a deterministic
// hash of region|title|pubDate ([synthesizeID]) so the same warning keeps
// the same ID across cycles and the notified-set comparison can suppress
// repeats. Deduplication compares titles after lowercasing, trimming, and
// stripping punctuation, keeping the first occurrence.
package domain

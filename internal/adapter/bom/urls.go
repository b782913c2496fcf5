package bom

import (
	"fmt"

	"github.com/stormpetrel/bomwatch/internal/domain"
)

// PortalURL is the generic BOM warnings portal, the last-resort link when no
// state-specific page applies.
const PortalURL = "https://www.bom.gov.au/weather-and-climate/warnings-and-alerts"

// feedPaths maps each state to its warning feed path on the BOM host.
// The ACT has no feed of its own and shares NSW's.
var feedPaths = map[domain.Region]string{
	domain.RegionNSW: "/fwo/IDZ00054.warnings_nsw.xml",
	domain.RegionVIC: "/fwo/IDZ00059.warnings_vic.xml",
	domain.RegionQLD: "/fwo/IDZ00056.warnings_qld.xml",
	domain.RegionSA:  "/fwo/IDZ00057.warnings_sa.xml",
	domain.RegionWA:  "/fwo/IDZ00060.warnings_wa.xml",
	domain.RegionTAS: "/fwo/IDZ00058.warnings_tas.xml",
	domain.RegionNT:  "/fwo/IDZ00055.warnings_nt.xml",
	domain.RegionACT: "/fwo/IDZ00054.warnings_nsw.xml",
}

// warningsPages maps each state to its human-facing warnings page.
var warningsPages = map[domain.Region]string{
	domain.RegionNSW: "http://www.bom.gov.au/nsw/warnings/",
	domain.RegionVIC: "http://www.bom.gov.au/vic/warnings/",
	domain.RegionQLD: "http://www.bom.gov.au/qld/warnings/",
	domain.RegionSA:  "http://www.bom.gov.au/sa/warnings/",
	domain.RegionWA:  "http://www.bom.gov.au/wa/warnings/",
	domain.RegionTAS: "http://www.bom.gov.au/tas/warnings/",
	domain.RegionNT:  "http://www.bom.gov.au/nt/warnings/",
	domain.RegionACT: "http://www.bom.gov.au/act/warnings/",
}

// FeedPath returns the feed path for a region. The region enumeration is
// closed, so a miss indicates a programming error.
func FeedPath(region domain.Region) (string, error) {
	path, ok := feedPaths[region]
	if !ok {
		return "", fmt.Errorf("no warning feed for region %q", region)
	}
	return path, nil
}

// WarningsPageURL returns the warnings page for a region, falling back to
// the generic portal for unknown regions.
func WarningsPageURL(region domain.Region) string {
	if page, ok := warningsPages[region]; ok {
		return page
	}
	return PortalURL
}

package domain

// Continental bounding box for Australia. Coordinates outside it are out of
// coverage and never reach ClassifyRegion.
const (
	australiaMinLat = -44
	australiaMaxLat = -10
	australiaMinLon = 113
	australiaMaxLon = 154
)

// InAustralia reports whether the coordinate falls inside the continental
// bounding box.
func InAustralia(lat, lon float64) bool {
	return lat >= australiaMinLat && lat <= australiaMaxLat &&
		lon >= australiaMinLon && lon <= australiaMaxLon
}

// regionBox is an axis-aligned bounding box for one state or territory.
type regionBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
	region         Region
}

// regionBoxes is tested in order. The ACT box comes first: it is nested
// inside the NSW box and would be unreachable after it.
var regionBoxes = []regionBox{
	{minLat: -35.92, maxLat: -35.12, minLon: 148.76, maxLon: 149.40, region: RegionACT},
	{minLat: -29, maxLat: -10, minLon: 138, maxLon: 154, region: RegionQLD},
	{minLat: -38, maxLat: -28, minLon: 141, maxLon: 154, region: RegionNSW},
	{minLat: -39.2, maxLat: -34, minLon: 140.9, maxLon: 150, region: RegionVIC},
	{minLat: -44, maxLat: -39, minLon: 144, maxLon: 149, region: RegionTAS},
	{minLat: -38, maxLat: -26, minLon: 129, maxLon: 141, region: RegionSA},
	{minLat: -35, maxLat: -13.5, minLon: 113, maxLon: 129, region: RegionWA},
	{minLat: -26, maxLat: -10.5, minLon: 129, maxLon: 138, region: RegionNT},
}

// ClassifyRegion maps a coordinate inside the continental box to a state or
// territory. It is total: coordinates that miss every box (coastal waters,
// box seams) fall through to a longitude/latitude heuristic.
func ClassifyRegion(lat, lon float64) Region {
	for _, b := range regionBoxes {
		if lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon {
			return b.region
		}
	}

	switch {
	case lon < 135:
		return RegionWA
	case lon > 148:
		return RegionNSW
	case lat < -35:
		return RegionVIC
	default:
		return RegionNSW
	}
}

// cityAnchor is a capital-city reference point used to resolve a friendly
// location name for display and warning-text matching.
type cityAnchor struct {
	name     string
	lat, lon float64
}

// anchorRange is the half-width, in degrees on each axis, within which a
// coordinate is considered "near" a capital.
const anchorRange = 0.5

var cityAnchors = []cityAnchor{
	{name: "Canberra", lat: -35.28, lon: 149.13},
	{name: "Sydney", lat: -33.87, lon: 151.21},
	{name: "Melbourne", lat: -37.81, lon: 144.96},
	{name: "Brisbane", lat: -27.47, lon: 153.03},
	{name: "Perth", lat: -31.95, lon: 115.86},
	{name: "Adelaide", lat: -34.93, lon: 138.60},
	{name: "Hobart", lat: -42.88, lon: 147.33},
	{name: "Darwin", lat: -12.46, lon: 130.84},
}

// NearestCapital returns the name of the capital city within anchorRange of
// the coordinate on both axes, or "" when none qualifies.
func NearestCapital(lat, lon float64) string {
	for _, c := range cityAnchors {
		if abs(lat-c.lat) < anchorRange && abs(lon-c.lon) < anchorRange {
			return c.name
		}
	}
	return ""
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

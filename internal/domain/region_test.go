package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInAustralia(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"Sydney", -33.87, 151.21, true},
		{"Perth", -31.95, 115.86, true},
		{"Darwin", -12.46, 130.84, true},
		{"Auckland", -36.85, 174.76, false},
		{"London", 51.51, -0.13, false},
		{"north of box", -9.9, 140, false},
		{"west of box", -25, 112.9, false},
		{"corner inside", -44, 113, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InAustralia(tt.lat, tt.lon))
		})
	}
}

func TestClassifyRegion(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     Region
	}{
		{"Canberra", -35.28, 149.13, RegionACT},
		{"Sydney", -33.87, 151.21, RegionNSW},
		{"Melbourne", -37.81, 144.96, RegionVIC},
		{"Brisbane", -27.47, 153.03, RegionQLD},
		{"Adelaide", -34.93, 138.60, RegionSA},
		{"Perth", -31.95, 115.86, RegionWA},
		{"Hobart", -42.88, 147.33, RegionTAS},
		{"Darwin", -12.46, 130.84, RegionNT},
		// ACT box corners take precedence over the enclosing NSW box.
		{"ACT northwest corner", -35.12, 148.76, RegionACT},
		{"ACT southeast corner", -35.92, 149.40, RegionACT},
		{"just outside ACT is NSW", -35.0, 149.13, RegionNSW},
		// Fallback chain for coordinates that miss every box.
		{"far west fallback", -36, 120, RegionWA},
		{"far east fallback", -41, 150, RegionNSW},
		{"south fallback", -38.5, 136, RegionVIC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRegion(tt.lat, tt.lon))
		})
	}
}

// ClassifyRegion must return a region from the enumeration for every
// coordinate inside the continental box.
func TestClassifyRegion_Total(t *testing.T) {
	valid := map[Region]bool{
		RegionNSW: true, RegionVIC: true, RegionQLD: true, RegionSA: true,
		RegionWA: true, RegionTAS: true, RegionNT: true, RegionACT: true,
	}

	for lat := -44.0; lat <= -10.0; lat += 0.5 {
		for lon := 113.0; lon <= 154.0; lon += 0.5 {
			region := ClassifyRegion(lat, lon)
			assert.True(t, valid[region], fmt.Sprintf("(%v, %v) classified as %q", lat, lon, region))
		}
	}
}

func TestNearestCapital(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"exactly Canberra", -35.28, 149.13, "Canberra"},
		{"near Sydney", -33.95, 151.10, "Sydney"},
		{"near Hobart", -42.95, 147.10, "Hobart"},
		{"outback", -25.0, 135.0, ""},
		{"just outside range", -35.28, 149.13 + 0.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearestCapital(tt.lat, tt.lon))
		})
	}
}

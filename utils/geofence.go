package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SiteBoundary is the polygon fence around a construction site, stored as
// a [[lng,lat],...] ring in the project row.
type SiteBoundary struct {
	ring orb.Ring
}

// ParseSiteBoundary decodes a stored boundary ring. An empty or "[]" value
// yields nil: no fence configured.
func ParseSiteBoundary(raw []byte) (*SiteBoundary, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var coords [][]float64
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil, fmt.Errorf("invalid site boundary JSON: %w", err)
	}
	if len(coords) == 0 {
		return nil, nil
	}
	if len(coords) < 3 {
		return nil, errors.New("site boundary needs at least 3 coordinates to form a polygon")
	}

	ring := make(orb.Ring, 0, len(coords)+1)
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("coordinate %d: want [lng, lat] pair", i)
		}
		lng, lat := c[0], c[1]
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("coordinate %d: latitude %f out of range", i, lat)
		}
		if lng < -180 || lng > 180 {
			return nil, fmt.Errorf("coordinate %d: longitude %f out of range", i, lng)
		}
		ring = append(ring, orb.Point{lng, lat})
	}
	// Close the ring if the client did not.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return &SiteBoundary{ring: ring}, nil
}

// Contains reports whether a submitted location falls inside the fence.
func (b *SiteBoundary) Contains(lat, lng float64) bool {
	return planar.PolygonContains(orb.Polygon{b.ring}, orb.Point{lng, lat})
}

package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// EarthquakeFeature is one event from the feed. Coordinates is nil when the
// feed carried no geometry.
type EarthquakeFeature struct {
	ID          string
	Coordinates []float64 // [lon, lat, depthKm]
	Magnitude   *float64
	Place       string
	Time        time.Time
	URL         string
}

// HasCoordinates reports whether the feature can be placed on a map.
func (f EarthquakeFeature) HasCoordinates() bool {
	return len(f.Coordinates) >= 2
}

// Depth returns the third coordinate, or NaN when the feed omitted it.
func (f EarthquakeFeature) Depth() float64 {
	if len(f.Coordinates) < 3 {
		return math.NaN()
	}
	return f.Coordinates[2]
}

// LatLng is a WGS-84 position in Leaflet order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Feed wire types. Only the fields the map consumes are decoded.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Geometry   *geometry  `json:"geometry"`
	Properties properties `json:"properties"`
}

// geometry keeps coordinates as pointers so a JSON null stays distinguishable
// from 0.
type geometry struct {
	Coordinates []*float64 `json:"coordinates"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  int64    `json:"time"`
	URL   string   `json:"url"`
}

// ParseFeatureCollection decodes a USGS GeoJSON document into features.
// A document without a features array yields an empty slice.
func ParseFeatureCollection(data []byte) ([]EarthquakeFeature, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	out := make([]EarthquakeFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		ef := EarthquakeFeature{
			ID:        f.ID,
			Magnitude: f.Properties.Mag,
			URL:       f.Properties.URL,
		}
		if f.Geometry != nil {
			ef.Coordinates = decodeCoordinates(f.Geometry.Coordinates)
		}
		if f.Properties.Place != nil {
			ef.Place = *f.Properties.Place
		}
		if f.Properties.Time != 0 {
			ef.Time = time.UnixMilli(f.Properties.Time).UTC()
		}
		out = append(out, ef)
	}
	return out, nil
}

// decodeCoordinates returns nil unless both lon and lat are present. A null
// depth becomes NaN.
func decodeCoordinates(raw []*float64) []float64 {
	if len(raw) < 2 || raw[0] == nil || raw[1] == nil {
		return nil
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}

package http

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// markersToGeoJSON converts markers to Point features carrying the marker's
// style and popup values as properties.
func markersToGeoJSON(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
		if m.ID != "" {
			f.ID = m.ID
		}

		var depth any
		if !math.IsNaN(m.Depth) {
			depth = m.Depth
		}
		var magnitude any
		if m.Popup.Magnitude != nil && !math.IsNaN(*m.Popup.Magnitude) {
			magnitude = *m.Popup.Magnitude
		}

		f.Properties["place"] = m.Popup.Place
		f.Properties["magnitude"] = magnitude
		f.Properties["depth"] = depth
		f.Properties["radius"] = m.Radius
		f.Properties["color"] = m.Color
		f.Properties["fillColor"] = m.FillColor
		f.Properties["weight"] = m.Weight
		f.Properties["fillOpacity"] = m.FillOpacity
		f.Properties["popup"] = m.Popup.HTML()
		fc.Append(f)
	}
	return fc
}

// parseBBox reads "west,south,east,north" in degrees.
func parseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errors.New("bbox must be west,south,east,north")
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return orb.Bound{}, fmt.Errorf("bbox value %q is not a number", p)
		}
		v[i] = f
	}

	west, south, east, north := v[0], v[1], v[2], v[3]
	if west < -180 || east > 180 || south < -90 || north > 90 {
		return orb.Bound{}, errors.New("bbox out of range")
	}
	if west > east || south > north {
		return orb.Bound{}, errors.New("bbox min must not exceed max")
	}
	return orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}}, nil
}

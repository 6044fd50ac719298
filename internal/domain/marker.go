package domain

import (
	"fmt"
	"html"
	"math"
	"strconv"
)

// DefaultMagnitude sizes events whose magnitude is missing, zero or NaN.
const DefaultMagnitude = 0.1

// MinRadius is the smallest marker radius in pixels.
const MinRadius = 5.0

const (
	radiusScale  = 3.0
	strokeWeight = 0.5
	fillOpacity  = 0.8
)

// Marker is the view object for one earthquake, in the shape Leaflet's
// circleMarker options expect.
type Marker struct {
	ID          string  `json:"id,omitempty"`
	Position    LatLng  `json:"position"`
	Depth       float64 `json:"-"`
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
	Popup       Popup   `json:"-"`
}

// Popup holds the values shown when a marker is clicked. Magnitude and depth
// are the feed values, before any sizing default.
type Popup struct {
	Place     string
	Magnitude *float64
	Depth     float64
}

// MagnitudeText formats the reported magnitude, or "unknown" when absent.
func (p Popup) MagnitudeText() string {
	if p.Magnitude == nil || math.IsNaN(*p.Magnitude) {
		return "unknown"
	}
	return formatNumber(*p.Magnitude)
}

// DepthText formats the depth with its unit suffix.
func (p Popup) DepthText() string {
	if math.IsNaN(p.Depth) {
		return "unknown km"
	}
	return formatNumber(p.Depth) + " km"
}

// HTML renders the popup body bound to the marker. The place name is escaped.
func (p Popup) HTML() string {
	return fmt.Sprintf("<h3>%s</h3><p>Magnitude: %s</p><p>Depth: %s</p>",
		html.EscapeString(p.Place), p.MagnitudeText(), p.DepthText())
}

// RadiusForMagnitude returns the marker radius in pixels: max(3 × mag, 5).
// Nil, zero and NaN magnitudes are replaced with DefaultMagnitude first.
func RadiusForMagnitude(mag *float64) float64 {
	m := DefaultMagnitude
	if mag != nil && *mag != 0 && !math.IsNaN(*mag) {
		m = *mag
	}
	return math.Max(m*radiusScale, MinRadius)
}

// FeatureToMarker builds the marker for a feature. It returns false for
// features without usable coordinates.
func FeatureToMarker(f EarthquakeFeature) (Marker, bool) {
	if !f.HasCoordinates() {
		return Marker{}, false
	}

	depth := f.Depth()
	color := ColorForDepth(depth)

	return Marker{
		ID:          f.ID,
		Position:    LatLng{Lat: f.Coordinates[1], Lng: f.Coordinates[0]},
		Depth:       depth,
		Radius:      RadiusForMagnitude(f.Magnitude),
		FillColor:   color,
		Color:       color,
		Weight:      strokeWeight,
		FillOpacity: fillOpacity,
		Popup: Popup{
			Place:     f.Place,
			Magnitude: f.Magnitude,
			Depth:     depth,
		},
	}, true
}

// BuildMarkers transforms features in order, dropping those without
// coordinates. It returns the markers and the number of features skipped.
func BuildMarkers(features []EarthquakeFeature) ([]Marker, int) {
	markers := make([]Marker, 0, len(features))
	skipped := 0
	for _, f := range features {
		m, ok := FeatureToMarker(f)
		if !ok {
			skipped++
			continue
		}
		markers = append(markers, m)
	}
	return markers, skipped
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlace = "Offshore Test"

func ptr(v float64) *float64 { return &v }

func TestRadiusForMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		mag      *float64
		expected float64
	}{
		{"nil", nil, 5},
		{"zero", ptr(0), 5},
		{"NaN", ptr(math.NaN()), 5},
		{"tiny", ptr(0.4), 5},
		{"floor boundary", ptr(5.0 / 3.0), 5},
		{"moderate", ptr(4.5), 13.5},
		{"large", ptr(7.8), 23.4},
		{"negative", ptr(-1.2), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RadiusForMagnitude(tt.mag), 1e-9)
		})
	}
}

func TestRadiusForMagnitude_MatchesFormula(t *testing.T) {
	for m := -2.0; m <= 10; m += 0.1 {
		if m == 0 {
			continue
		}
		mag := m
		assert.InDelta(t, math.Max(3*m, 5), RadiusForMagnitude(&mag), 1e-9, "mag %v", m)
	}
}

func TestFeatureToMarker(t *testing.T) {
	f := EarthquakeFeature{
		ID:          "us7000test",
		Coordinates: []float64{-122.4, 37.8, 12},
		Magnitude:   ptr(4.5),
		Place:       testPlace,
	}

	m, ok := FeatureToMarker(f)
	require.True(t, ok)

	expected := Marker{
		ID:          "us7000test",
		Position:    LatLng{Lat: 37.8, Lng: -122.4},
		Depth:       12,
		Radius:      13.5,
		FillColor:   "#FD8D3C",
		Color:       "#FD8D3C",
		Weight:      0.5,
		FillOpacity: 0.8,
		Popup:       Popup{Place: testPlace, Magnitude: ptr(4.5), Depth: 12},
	}
	if diff := cmp.Diff(expected, m); diff != "" {
		t.Fatalf("marker mismatch (-want +got):\n%s", diff)
	}

	popup := m.Popup.HTML()
	assert.Contains(t, popup, testPlace)
	assert.Contains(t, popup, "4.5")
	assert.Contains(t, popup, "12 km")
	assert.Equal(t, ColorForDepth(12), BuildLegend().Entries[1].Color, "12 km is in the 10–30 band")
}

func TestFeatureToMarker_NoCoordinates(t *testing.T) {
	_, ok := FeatureToMarker(EarthquakeFeature{Place: "nowhere", Magnitude: ptr(3)})
	assert.False(t, ok)

	_, ok = FeatureToMarker(EarthquakeFeature{Coordinates: []float64{10}})
	assert.False(t, ok)
}

func TestFeatureToMarker_MissingDepth(t *testing.T) {
	m, ok := FeatureToMarker(EarthquakeFeature{Coordinates: []float64{1, 2}})
	require.True(t, ok)
	assert.True(t, math.IsNaN(m.Depth))
	assert.Equal(t, LightestColor, m.Color)
	assert.Equal(t, "unknown km", m.Popup.DepthText())
}

func TestFeatureToMarker_MissingMagnitude(t *testing.T) {
	m, ok := FeatureToMarker(EarthquakeFeature{Coordinates: []float64{1, 2, 3}, Place: "somewhere"})
	require.True(t, ok)
	assert.InDelta(t, MinRadius, m.Radius, 1e-9)
	assert.Equal(t, "unknown", m.Popup.MagnitudeText(), "popup shows the reported value, not the sizing default")
	assert.NotContains(t, m.Popup.HTML(), "0.1")
}

func TestPopupHTML(t *testing.T) {
	p := Popup{Place: `5 km <b>N</b> of "Town"`, Magnitude: ptr(2.25), Depth: -1.5}
	assert.Equal(t,
		"<h3>5 km &lt;b&gt;N&lt;/b&gt; of &#34;Town&#34;</h3><p>Magnitude: 2.25</p><p>Depth: -1.5 km</p>",
		p.HTML())
}

func TestBuildMarkers(t *testing.T) {
	features := []EarthquakeFeature{
		{ID: "a", Coordinates: []float64{-122.4, 37.8, 12}, Magnitude: ptr(4.5), Place: testPlace},
		{ID: "b", Coordinates: nil, Magnitude: ptr(3)},
		{ID: "c", Coordinates: []float64{140.1, 35.6, 95}, Magnitude: ptr(6.1), Place: "Japan"},
	}

	markers, skipped := BuildMarkers(features)

	require.Len(t, markers, 2)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "a", markers[0].ID)
	assert.Equal(t, "c", markers[1].ID)
	assert.Equal(t, "#800026", markers[1].Color)
}

func TestBuildMarkers_Empty(t *testing.T) {
	markers, skipped := BuildMarkers(nil)
	assert.Empty(t, markers)
	assert.NotNil(t, markers)
	assert.Zero(t, skipped)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12", formatNumber(12))
	assert.Equal(t, "4.5", formatNumber(4.5))
	assert.True(t, strings.HasPrefix(formatNumber(0.1+0.2), "0.3"))
}

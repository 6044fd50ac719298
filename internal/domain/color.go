package domain

// DepthColorBand pairs an exclusive lower depth bound with a fill color.
type DepthColorBand struct {
	Above float64
	Color string
}

// LightestColor is the catch-all band for depths of 10 km or less.
const LightestColor = "#FEB24C"

// depthBands is ordered highest threshold first. A depth takes the color of
// the first band it exceeds, else LightestColor.
var depthBands = []DepthColorBand{
	{Above: 90, Color: "#800026"},
	{Above: 70, Color: "#BD0026"},
	{Above: 50, Color: "#E31A1C"},
	{Above: 30, Color: "#FC4E2A"},
	{Above: 10, Color: "#FD8D3C"},
}

// DepthBands returns a copy of the thresholded bands, highest first.
func DepthBands() []DepthColorBand {
	out := make([]DepthColorBand, len(depthBands))
	copy(out, depthBands)
	return out
}

// ColorForDepth maps a depth in kilometers to its band color. NaN compares
// false against every threshold and returns LightestColor.
func ColorForDepth(depth float64) string {
	for _, b := range depthBands {
		if depth > b.Above {
			return b.Color
		}
	}
	return LightestColor
}

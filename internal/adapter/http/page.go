package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/couchcryptid/quake-map-service/internal/pipeline"
)

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var mapPage = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// pageData feeds the map template. View is marshalled to JSON inside the
// script block by html/template's JS escaping.
type pageData struct {
	ContainerID string
	RenderID    string
	View        pageView
}

type pageView struct {
	ContainerID string       `json:"containerId"`
	Center      [2]float64   `json:"center"`
	Zoom        int          `json:"zoom"`
	Tiles       pageTiles    `json:"tiles"`
	Markers     []pageMarker `json:"markers"`
	Legend      pageLegend   `json:"legend"`
}

type pageTiles struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type pageMarker struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
	Popup       string  `json:"popup"`
}

type pageLegend struct {
	Position string `json:"position"`
	HTML     string `json:"html"`
}

// newPageData flattens a view for the template. Markers stays nil when no
// cluster layer is attached so the page skips the cluster group entirely.
func newPageData(v *pipeline.MapView) pageData {
	var markers []pageMarker
	if v.Clusters != nil {
		markers = make([]pageMarker, 0, v.Clusters.Len())
		for _, m := range v.Clusters.Markers() {
			markers = append(markers, pageMarker{
				Lat:         m.Position.Lat,
				Lng:         m.Position.Lng,
				Radius:      m.Radius,
				FillColor:   m.FillColor,
				Color:       m.Color,
				Weight:      m.Weight,
				FillOpacity: m.FillOpacity,
				Popup:       m.Popup.HTML(),
			})
		}
	}

	return pageData{
		ContainerID: v.ContainerID,
		RenderID:    v.RenderID,
		View: pageView{
			ContainerID: v.ContainerID,
			Center:      [2]float64{v.Center.Lat, v.Center.Lng},
			Zoom:        v.Zoom,
			Tiles:       pageTiles{URL: v.Tiles.URL, Attribution: v.Tiles.Attribution},
			Markers:     markers,
			Legend:      pageLegend{Position: v.Legend.Position, HTML: v.Legend.HTML()},
		},
	}
}

func renderPage(w io.Writer, v *pipeline.MapView) error {
	return mapPage.Execute(w, newPageData(v))
}

package pipeline

import (
	"time"

	"github.com/couchcryptid/quake-map-service/internal/cluster"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Fixed map bootstrap configuration.
const (
	MapContainerID = "map"
	DefaultZoom    = 5

	OSMTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	OSMTileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// DefaultCenter is the geographic center of the contiguous United States.
var DefaultCenter = domain.LatLng{Lat: 39.8283, Lng: -98.5795}

// TileLayer is the base map layer.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// MapView is the owned handle for one rendered map. Clusters stays nil until
// a render pass attaches a layer.
type MapView struct {
	ContainerID string
	Center      domain.LatLng
	Zoom        int
	Tiles       TileLayer
	Legend      domain.Legend
	Clusters    *cluster.Layer
	RenderID    string
	RenderedAt  time.Time
}

// legend is built once; the bands it derives from are fixed.
var legend = domain.BuildLegend()

// Bootstrap creates a map view with the base tile layer and the legend. It
// does not depend on the feed.
func Bootstrap() *MapView {
	return &MapView{
		ContainerID: MapContainerID,
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		Tiles: TileLayer{
			URL:         OSMTileURL,
			Attribution: OSMTileAttribution,
		},
		Legend: legend,
	}
}

// AttachClusters adds the cluster layer to the map as a single layer.
func (v *MapView) AttachClusters(l *cluster.Layer) {
	v.Clusters = l
}

// Markers returns the attached markers, or none when no layer is attached.
func (v *MapView) Markers() []domain.Marker {
	if v.Clusters == nil {
		return []domain.Marker{}
	}
	return v.Clusters.Markers()
}

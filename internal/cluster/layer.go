// Package cluster holds the marker container handed to the map's cluster
// group. Grouping itself happens in the browser; the layer keeps markers in
// insertion order and indexes them for bounding-box queries.
package cluster

import (
	"sort"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// pointTolerance gives each marker a tiny non-degenerate rectangle in the index.
const pointTolerance = 1e-9

// Layer is a cluster container of markers.
type Layer struct {
	markers []domain.Marker
	tree    *rtreego.Rtree
}

// indexed is a marker's slot in the R-tree, stored as [lng, lat].
type indexed struct {
	idx  int
	rect rtreego.Rect
}

func (i indexed) Bounds() rtreego.Rect { return i.rect }

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{tree: rtreego.NewTree(2, 25, 50)}
}

// Add appends a marker to the layer.
func (l *Layer) Add(m domain.Marker) {
	idx := len(l.markers)
	l.markers = append(l.markers, m)
	p := rtreego.Point{m.Position.Lng, m.Position.Lat}
	l.tree.Insert(indexed{idx: idx, rect: p.ToRect(pointTolerance)})
}

// AddAll appends markers in order.
func (l *Layer) AddAll(markers []domain.Marker) {
	for _, m := range markers {
		l.Add(m)
	}
}

// Len returns the number of markers in the layer.
func (l *Layer) Len() int { return len(l.markers) }

// Markers returns the markers in insertion order.
func (l *Layer) Markers() []domain.Marker {
	out := make([]domain.Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

// Within returns the markers inside b, in insertion order.
func (l *Layer) Within(b orb.Bound) []domain.Marker {
	if len(l.markers) == 0 {
		return []domain.Marker{}
	}

	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.Lon(), b.Min.Lat()},
		rtreego.Point{b.Max.Lon(), b.Max.Lat()},
	)
	if err != nil {
		return []domain.Marker{}
	}

	hits := l.tree.SearchIntersect(rect)
	idxs := make([]int, 0, len(hits))
	for _, h := range hits {
		i := h.(indexed).idx
		if b.Contains(orb.Point{l.markers[i].Position.Lng, l.markers[i].Position.Lat}) {
			idxs = append(idxs, i)
		}
	}
	sort.Ints(idxs)

	out := make([]domain.Marker, len(idxs))
	for n, i := range idxs {
		out[n] = l.markers[i]
	}
	return out
}

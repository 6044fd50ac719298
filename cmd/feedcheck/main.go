// Command feedcheck fetches the live earthquake feed once and verifies the
// data the map would be built from: the fetch itself, coordinate presence and
// marker placement, depth band partitioning, and legend shape.
//
// Usage:
//
//	go run ./cmd/feedcheck -feed-url https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	feedURL := flag.String("feed-url", config.DefaultFeedURL, "GeoJSON feed to validate")
	timeout := flag.Duration("timeout", 30*time.Second, "feed request timeout")
	flag.Parse()

	if *feedURL == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *feedURL, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, feedURL string, timeout time.Duration) int {
	fmt.Fprintln(out, "=== Earthquake Feed Validation ===")
	fmt.Fprintln(out)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := usgs.NewClient(feedURL, timeout, logger)

	start := time.Now()
	features, err := client.FetchFeatures(context.Background())
	elapsed := time.Since(start)

	phases := []*phase{
		validateFetch(features, err),
		validateCoordinates(features),
		validateBandPartition(features),
		validateLegend(domain.BuildLegend()),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	markers, skipped := domain.BuildMarkers(features)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Features: %d fetched in %s, %d markers, %d skipped without coordinates\n",
		len(features), elapsed.Round(time.Millisecond), len(markers), skipped)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Validation phases ──

func validateFetch(features []domain.EarthquakeFeature, fetchErr error) *phase {
	p := &phase{name: "Feed fetch"}
	if fetchErr != nil {
		p.errorf("fetch failed: %v", fetchErr)
		return p
	}
	if len(features) == 0 {
		p.errorf("feed returned no features")
	}

	seen := make(map[string]bool, len(features))
	for i, f := range features {
		if f.ID == "" {
			continue
		}
		if seen[f.ID] {
			p.errorf("feature %d: duplicate id %q", i, f.ID)
		}
		seen[f.ID] = true
	}
	return p
}

// validateCoordinates checks that every feature with coordinates becomes a
// marker at (lat, lon) = (coordinates[1], coordinates[0]) and that features
// without them are the only ones skipped.
func validateCoordinates(features []domain.EarthquakeFeature) *phase {
	p := &phase{name: "Coordinate presence"}

	withCoords := 0
	for i, f := range features {
		m, ok := domain.FeatureToMarker(f)
		if ok != f.HasCoordinates() {
			p.errorf("feature %d (%s): marker built=%t but has coordinates=%t", i, f.ID, ok, f.HasCoordinates())
			continue
		}
		if !ok {
			continue
		}
		withCoords++

		lng, lat := f.Coordinates[0], f.Coordinates[1]
		if m.Position.Lat != lat || m.Position.Lng != lng {
			p.errorf("feature %d (%s): marker at %v, want lat=%v lng=%v", i, f.ID, m.Position, lat, lng)
		}
		if math.Abs(lat) > 90 || math.Abs(lng) > 180 {
			p.errorf("feature %d (%s): coordinates out of range lat=%v lng=%v", i, f.ID, lat, lng)
		}
		if m.Radius < domain.MinRadius {
			p.errorf("feature %d (%s): radius %v below minimum %v", i, f.ID, m.Radius, domain.MinRadius)
		}
	}

	markers, skipped := domain.BuildMarkers(features)
	if len(markers) != withCoords {
		p.errorf("built %d markers, want %d", len(markers), withCoords)
	}
	if len(markers)+skipped != len(features) {
		p.errorf("markers (%d) + skipped (%d) != features (%d)", len(markers), skipped, len(features))
	}
	return p
}

// validateBandPartition checks that every fetched depth lands in exactly one
// band: the highest band it strictly exceeds, else the lightest.
func validateBandPartition(features []domain.EarthquakeFeature) *phase {
	p := &phase{name: "Depth band partition"}

	bands := domain.DepthBands()
	for i := 1; i < len(bands); i++ {
		if bands[i].Above >= bands[i-1].Above {
			p.errorf("bands not ordered highest first at %d: %v then %v", i, bands[i-1].Above, bands[i].Above)
		}
	}
	for _, b := range bands {
		if got := domain.ColorForDepth(b.Above); got == b.Color {
			p.errorf("depth %v is on the exclusive edge of %s but mapped into it", b.Above, b.Color)
		}
	}

	for i, f := range features {
		if !f.HasCoordinates() {
			continue
		}
		depth := f.Depth()

		matches := 0
		want := domain.LightestColor
		for _, b := range bands {
			if depth > b.Above {
				if matches == 0 {
					want = b.Color
				}
				matches++
			}
		}
		if got := domain.ColorForDepth(depth); got != want {
			p.errorf("feature %d (%s): depth %v colored %s, want %s", i, f.ID, depth, got, want)
		}
	}
	return p
}

func validateLegend(legend domain.Legend) *phase {
	p := &phase{name: "Legend shape"}

	if legend.Position != domain.LegendPosition {
		p.errorf("position %q, want %q", legend.Position, domain.LegendPosition)
	}
	if n := len(legend.Entries); n != len(domain.DepthBands())+1 {
		p.errorf("%d legend entries, want one per band (%d)", n, len(domain.DepthBands())+1)
		return p
	}

	colors := make(map[string]bool)
	for i, e := range legend.Entries {
		last := i == len(legend.Entries)-1
		if last && !strings.HasSuffix(e.Label, "+") {
			p.errorf("entry %d: open-ended label %q should end with +", i, e.Label)
		}
		if !last && !strings.Contains(e.Label, "–") {
			p.errorf("entry %d: label %q should be a range", i, e.Label)
		}
		if colors[e.Color] {
			p.errorf("entry %d: color %s repeated", i, e.Color)
		}
		colors[e.Color] = true
	}

	html := legend.HTML()
	if got := strings.Count(html, "<br>"); got != len(legend.Entries)-1 {
		p.errorf("legend html has %d row separators, want %d", got, len(legend.Entries)-1)
	}
	return p
}

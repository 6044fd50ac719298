package pipeline

import "github.com/jonboulle/clockwork"

// renderClock stamps MapView.RenderedAt and measures feed fetch latency.
var renderClock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the clock behind render timestamps and the fetch latency
// histogram. A nil clock restores wall time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	renderClock = c
}

// Package domain models USGS earthquake feed data and the presentation rules
// that turn it into map markers.
//
// # Data Source
//
// Events come from the USGS Earthquake Hazards Program summary feeds, available
// at https://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php. The service
// reads the "all earthquakes, past 7 days" feed, a GeoJSON FeatureCollection
// regenerated by USGS every minute.
//
// # Feed Conventions
//
// Geometry:
//
//	"coordinates": [longitude, latitude, depth]
//	GeoJSON order is lon/lat; Leaflet wants lat/lon, so markers flip the pair.
//	Depth is in kilometers and may be negative for events above sea level.
//	Geometry may be null for events whose location is still being reviewed.
//
// Properties consumed:
//
//	mag    magnitude, may be null for very recent or unreviewed events
//	place  free text label, e.g. "10 km SSW of Idyllwild, CA"
//	time   event origin time in milliseconds since the Unix epoch
//	url    USGS event page
//
// # Presentation Rules
//
// Color encodes depth using six bands evaluated highest threshold first:
//
//	>90 km #800026 | >70 #BD0026 | >50 #E31A1C | >30 #FC4E2A | >10 #FD8D3C | else #FEB24C
//
// NaN depth (missing third coordinate) falls through every comparison and
// lands in the lightest band. See [ColorForDepth].
//
// Radius encodes magnitude as max(3 × mag, 5) pixels. A missing, zero or NaN
// magnitude sizes as 0.1, which always yields the 5px floor. See
// [RadiusForMagnitude].
//
// Popups show the magnitude as reported, not the sizing default.
package domain

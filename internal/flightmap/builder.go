// Package flightmap projects enriched flights onto a map representation
// consumed opaquely by the presentation layer.
package flightmap

import (
	"strconv"

	"github.com/josericodata/FlightTrackingApp/internal/pipeline"
)

// Coordinates is a map center point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Popup is the metadata attached to a flight marker.
type Popup struct {
	Callsign           string `json:"callsign"`
	DepartingFrom      string `json:"departing_from"`
	SpeedKmh           string `json:"speed_kmh"`
	Altitude           string `json:"altitude_m"`
	EstimatedArrivalAt string `json:"estimated_arrival_at"`
}

// Marker places one flight on the map.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup Popup   `json:"popup"`
}

// Map is the rendering-layer projection of a flight set.
type Map struct {
	Center  Coordinates `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []Marker    `json:"markers"`
}

// Builder builds map objects. Arrival estimates arrive already resolved by
// enrichment; the builder never re-resolves anything.
type Builder struct {
	defaultZoom int
	focusedZoom int
}

// NewBuilder creates a new map builder with the configured zoom levels.
func NewBuilder(defaultZoom, focusedZoom int) *Builder {
	return &Builder{
		defaultZoom: defaultZoom,
		focusedZoom: focusedZoom,
	}
}

// Build returns a wide default view for an empty flight set, otherwise a
// map centered on the arithmetic mean of all flight positions with one
// marker per flight.
func (b *Builder) Build(flights []pipeline.EnrichedFlight) Map {
	if len(flights) == 0 {
		return Map{
			Center:  Coordinates{Lat: 0, Lon: 0},
			Zoom:    b.defaultZoom,
			Markers: []Marker{},
		}
	}

	var sumLat, sumLon float64
	markers := make([]Marker, 0, len(flights))
	for _, f := range flights {
		sumLat += f.Latitude
		sumLon += f.Longitude

		markers = append(markers, Marker{
			Lat: f.Latitude,
			Lon: f.Longitude,
			Popup: Popup{
				Callsign:           f.Callsign,
				DepartingFrom:      f.DepartingFrom,
				SpeedKmh:           strconv.FormatFloat(f.SpeedKmh, 'f', 2, 64),
				Altitude:           f.Altitude,
				EstimatedArrivalAt: f.EstimatedArrivalAt,
			},
		})
	}

	n := float64(len(flights))
	return Map{
		Center:  Coordinates{Lat: sumLat / n, Lon: sumLon / n},
		Zoom:    b.focusedZoom,
		Markers: markers,
	}
}

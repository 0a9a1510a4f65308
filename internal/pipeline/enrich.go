package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/josericodata/FlightTrackingApp/internal/airports"
	"github.com/josericodata/FlightTrackingApp/internal/opensky"
)

// Flights cruising at or above this barometric altitude (meters) skip the
// nearest-airport scan entirely; resolution is an O(airports) pass per row.
const arrivalAltitudeCeilingM = 1000.0

// mps to km/h
const speedConversionFactor = 3.6

// Enrich applies the per-flight transformation to every row, preserving
// input order. Rows must already have non-nil coordinates. The result is
// empty but non-nil for empty input.
func Enrich(states []opensky.StateVector, store *airports.Store) []EnrichedFlight {
	flights := make([]EnrichedFlight, 0, len(states))

	// One emptiness check per invocation, not one per row.
	refEmpty := store == nil || store.Empty()

	for _, sv := range states {
		var velocity float64
		if sv.Velocity != nil {
			velocity = *sv.Velocity
		}

		flights = append(flights, EnrichedFlight{
			Callsign:           strings.TrimSpace(sv.Callsign),
			DepartingFrom:      sv.OriginCountry,
			EstimatedArrivalAt: estimateArrival(sv, store, refEmpty),
			TimePosition:       formatTimePosition(sv.TimePosition),
			Altitude:           classifyAltitude(sv.BaroAltitude, sv.Velocity),
			SpeedKmh:           velocity * speedConversionFactor,
			Longitude:          *sv.Longitude,
			Latitude:           *sv.Latitude,
			Icao24:             sv.Icao24,
		})
	}

	return flights
}

// classifyAltitude returns the barometric altitude as a fixed 2-decimal
// string, or a phase label when the reading is zero or missing: stationary
// aircraft are grounded, moving ones are arriving or taking off.
func classifyAltitude(baroAltitude, velocity *float64) string {
	if baroAltitude == nil || *baroAltitude == 0 {
		if velocity == nil || *velocity == 0 {
			return PhaseGrounded
		}
		return PhaseArrivingTakingOff
	}
	return fmt.Sprintf("%.2f", *baroAltitude)
}

// estimateArrival resolves the nearest airport for flights below the
// arrival ceiling. High-altitude cruisers and flights without an altitude
// reading are not close to arrival.
func estimateArrival(sv opensky.StateVector, store *airports.Store, refEmpty bool) string {
	if sv.BaroAltitude == nil || *sv.BaroAltitude >= arrivalAltitudeCeilingM {
		return NotCloseToArrival
	}
	if refEmpty {
		return ArrivalUnknown
	}

	nearest, _, err := store.Nearest(*sv.Latitude, *sv.Longitude)
	if err != nil {
		return ArrivalUnknown
	}
	return nearest.Name
}

// formatTimePosition converts a unix position timestamp to an HH:MM:SS
// string in UTC. A missing timestamp stays absent.
func formatTimePosition(ts *int64) *string {
	if ts == nil {
		return nil
	}
	formatted := time.Unix(*ts, 0).UTC().Format("15:04:05")
	return &formatted
}

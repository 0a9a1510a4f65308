package pipeline

import (
	"strings"

	"github.com/josericodata/FlightTrackingApp/internal/opensky"
)

// FilterByAirline returns the rows whose trimmed callsign starts with the
// airline's code prefix. The match is case-sensitive; rows without a
// callsign are excluded. The input snapshot is never mutated.
func FilterByAirline(states []opensky.StateVector, code string) []opensky.StateVector {
	filtered := make([]opensky.StateVector, 0, len(states))
	for _, sv := range states {
		callsign := strings.TrimSpace(sv.Callsign)
		if callsign == "" {
			continue
		}
		if strings.HasPrefix(callsign, code) {
			filtered = append(filtered, sv)
		}
	}
	return filtered
}

// dropMissingPositions excludes rows lacking latitude or longitude; every
// flight that reaches enrichment has a usable coordinate.
func dropMissingPositions(states []opensky.StateVector) []opensky.StateVector {
	positioned := make([]opensky.StateVector, 0, len(states))
	for _, sv := range states {
		if sv.Latitude == nil || sv.Longitude == nil {
			continue
		}
		positioned = append(positioned, sv)
	}
	return positioned
}

// Package pipeline filters the live snapshot for a selected airline and
// enriches each flight with derived attributes.
package pipeline

// Phase labels substituted for the altitude column when no altitude reading
// is meaningful.
const (
	PhaseGrounded          = "Grounded"
	PhaseArrivingTakingOff = "Arriving/Taking Off"
)

// Arrival estimate sentinels.
const (
	// NotCloseToArrival marks flights cruising at or above the arrival
	// altitude ceiling; the nearest-airport scan is skipped for them.
	NotCloseToArrival = "NotCloseToArrival"
	// ArrivalUnknown is stamped when the airport reference set is empty and
	// no resolution is possible.
	ArrivalUnknown = "ArrivalUnknown"
)

// EnrichedFlight is the projection handed to the display collaborator and
// the map builder. Altitude holds either a 2-decimal meter figure or one of
// the phase labels. TimePosition is absent when the feed gave no position
// timestamp.
type EnrichedFlight struct {
	Callsign           string  `json:"callsign"`
	DepartingFrom      string  `json:"departing_from"`
	EstimatedArrivalAt string  `json:"estimated_arrival_at"`
	TimePosition       *string `json:"time_position"` // "HH:MM:SS" UTC
	Altitude           string  `json:"altitude_m"`
	SpeedKmh           float64 `json:"speed_kmh"`
	Longitude          float64 `json:"longitude"`
	Latitude           float64 `json:"latitude"`
	Icao24             string  `json:"icao24"`
}

// Result is one pipeline invocation's output. Flights is never nil; Notice
// carries a user-presentable message when the feed fetch degraded.
type Result struct {
	Flights []EnrichedFlight `json:"flights"`
	Notice  string           `json:"notice,omitempty"`
}

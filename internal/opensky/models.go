// Package opensky fetches live aircraft state vectors from an
// OpenSky-compatible feed.
package opensky

// statesResponse mirrors the JSON shape returned by /states/all: a `states`
// array of fixed-position value arrays.
type statesResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// Positional indices in each state array, per the feed documentation.
const (
	idxIcao24 = iota
	idxCallsign
	idxOriginCountry
	idxTimePosition
	idxLastContact
	idxLongitude
	idxLatitude
	idxBaroAltitude
	idxOnGround
	idxVelocity
	idxTrueTrack
	idxVerticalRate
	idxSensors
	idxGeoAltitude
	idxSquawk
	idxSPI
	idxPositionSource
)

// StateVector is one observed aircraft at fetch time. Nullable feed fields
// stay nullable; downstream stages decide what missing values mean. A
// snapshot lives only within one pipeline invocation.
type StateVector struct {
	Icao24         string   `json:"icao24"`
	Callsign       string   `json:"callsign"` // may carry trailing padding from the transponder
	OriginCountry  string   `json:"origin_country"`
	TimePosition   *int64   `json:"time_position"` // unix seconds of last position report
	LastContact    int64    `json:"last_contact"`
	Longitude      *float64 `json:"longitude"`
	Latitude       *float64 `json:"latitude"`
	BaroAltitude   *float64 `json:"baro_altitude"` // meters
	OnGround       bool     `json:"on_ground"`
	Velocity       *float64 `json:"velocity"` // m/s
	TrueTrack      *float64 `json:"true_track"`
	VerticalRate   *float64 `json:"vertical_rate"`
	GeoAltitude    *float64 `json:"geo_altitude"`
	Squawk         string   `json:"squawk"`
	SPI            bool     `json:"spi"`
	PositionSource int      `json:"position_source"`
}

// parseState defensively extracts one positional state array.
func parseState(s []interface{}) StateVector {
	sv := StateVector{
		Icao24:        stringAt(s, idxIcao24),
		Callsign:      stringAt(s, idxCallsign),
		OriginCountry: stringAt(s, idxOriginCountry),
		TimePosition:  int64PtrAt(s, idxTimePosition),
		Longitude:     floatPtrAt(s, idxLongitude),
		Latitude:      floatPtrAt(s, idxLatitude),
		BaroAltitude:  floatPtrAt(s, idxBaroAltitude),
		OnGround:      boolAt(s, idxOnGround),
		Velocity:      floatPtrAt(s, idxVelocity),
		TrueTrack:     floatPtrAt(s, idxTrueTrack),
		VerticalRate:  floatPtrAt(s, idxVerticalRate),
		GeoAltitude:   floatPtrAt(s, idxGeoAltitude),
		Squawk:        stringAt(s, idxSquawk),
		SPI:           boolAt(s, idxSPI),
	}
	if v := int64PtrAt(s, idxLastContact); v != nil {
		sv.LastContact = *v
	}
	if v := int64PtrAt(s, idxPositionSource); v != nil {
		sv.PositionSource = int(*v)
	}
	return sv
}

func stringAt(s []interface{}, i int) string {
	if i < len(s) {
		if v, ok := s[i].(string); ok {
			return v
		}
	}
	return ""
}

func boolAt(s []interface{}, i int) bool {
	if i < len(s) {
		if v, ok := s[i].(bool); ok {
			return v
		}
	}
	return false
}

func floatPtrAt(s []interface{}, i int) *float64 {
	if i < len(s) {
		if v, ok := s[i].(float64); ok {
			return &v
		}
	}
	return nil
}

func int64PtrAt(s []interface{}, i int) *int64 {
	if i < len(s) {
		if v, ok := s[i].(float64); ok {
			n := int64(v)
			return &n
		}
	}
	return nil
}

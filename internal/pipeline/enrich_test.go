package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josericodata/FlightTrackingApp/internal/airports"
	"github.com/josericodata/FlightTrackingApp/internal/opensky"
)

func testStore() *airports.Store {
	return airports.NewStore([]airports.Airport{
		{Ident: "EGLL", Name: "London Heathrow Airport", Lat: 51.4706, Lon: -0.461941, Type: "large_airport"},
		{Ident: "LFPG", Name: "Charles de Gaulle International Airport", Lat: 49.012798, Lon: 2.55, Type: "large_airport"},
	})
}

func positioned(sv opensky.StateVector) opensky.StateVector {
	if sv.Latitude == nil {
		sv.Latitude = fptr(51.5)
	}
	if sv.Longitude == nil {
		sv.Longitude = fptr(-0.1)
	}
	return sv
}

func TestClassifyAltitudeBranches(t *testing.T) {
	tests := []struct {
		name     string
		alt, vel *float64
		want     string
	}{
		{"zero altitude zero velocity", fptr(0), fptr(0), PhaseGrounded},
		{"zero altitude missing velocity", fptr(0), nil, PhaseGrounded},
		{"missing altitude zero velocity", nil, fptr(0), PhaseGrounded},
		{"zero altitude moving", fptr(0), fptr(5.0), PhaseArrivingTakingOff},
		{"missing altitude moving", nil, fptr(12.0), PhaseArrivingTakingOff},
		{"real altitude", fptr(500), fptr(100), "500.00"},
		{"fractional altitude", fptr(10363.2), fptr(250), "10363.20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyAltitude(tc.alt, tc.vel))
		})
	}
}

func TestArrivalEstimateAltitudeGate(t *testing.T) {
	store := testStore()

	low := Enrich([]opensky.StateVector{positioned(opensky.StateVector{
		Callsign: "BAW1", BaroAltitude: fptr(999.99), Velocity: fptr(100),
	})}, store)
	require.Len(t, low, 1)
	assert.Equal(t, "London Heathrow Airport", low[0].EstimatedArrivalAt)

	// Exactly 1000 takes the not-close branch: the gate is strictly below.
	boundary := Enrich([]opensky.StateVector{positioned(opensky.StateVector{
		Callsign: "BAW2", BaroAltitude: fptr(1000), Velocity: fptr(100),
	})}, store)
	require.Len(t, boundary, 1)
	assert.Equal(t, NotCloseToArrival, boundary[0].EstimatedArrivalAt)

	cruising := Enrich([]opensky.StateVector{positioned(opensky.StateVector{
		Callsign: "BAW3", BaroAltitude: fptr(11000), Velocity: fptr(250),
	})}, store)
	require.Len(t, cruising, 1)
	assert.Equal(t, NotCloseToArrival, cruising[0].EstimatedArrivalAt)

	// Missing altitude reads as not close to arrival.
	missing := Enrich([]opensky.StateVector{positioned(opensky.StateVector{
		Callsign: "BAW4", Velocity: fptr(5),
	})}, store)
	require.Len(t, missing, 1)
	assert.Equal(t, NotCloseToArrival, missing[0].EstimatedArrivalAt)
}

func TestArrivalEstimateEmptyReference(t *testing.T) {
	empty := airports.NewStore(nil)

	flights := Enrich([]opensky.StateVector{positioned(opensky.StateVector{
		Callsign: "BAW1", BaroAltitude: fptr(500), Velocity: fptr(100),
	})}, empty)
	require.Len(t, flights, 1)
	assert.Equal(t, ArrivalUnknown, flights[0].EstimatedArrivalAt)
}

func TestTimeAndSpeedDerivation(t *testing.T) {
	flights := Enrich([]opensky.StateVector{
		positioned(opensky.StateVector{
			Callsign:     "BAW1 ",
			TimePosition: iptr(1700000000),
			BaroAltitude: fptr(500),
			Velocity:     fptr(100),
		}),
		positioned(opensky.StateVector{
			Callsign:     "BAW2",
			TimePosition: nil, // no position report timestamp
			BaroAltitude: fptr(2000),
			Velocity:     nil, // missing velocity defaults to 0
		}),
	}, testStore())
	require.Len(t, flights, 2)

	require.NotNil(t, flights[0].TimePosition)
	assert.Equal(t, "22:13:20", *flights[0].TimePosition)
	assert.InDelta(t, 360.0, flights[0].SpeedKmh, 1e-9)
	assert.Equal(t, "BAW1", flights[0].Callsign)

	assert.Nil(t, flights[1].TimePosition)
	assert.Zero(t, flights[1].SpeedKmh)
}

func TestFormatTimePositionUsesUTC(t *testing.T) {
	// Renderings must not depend on the host timezone.
	tests := []struct {
		ts   int64
		want string
	}{
		{0, "00:00:00"},
		{1699952000, "08:53:20"},
		{1700000000, "22:13:20"},
	}

	for _, tc := range tests {
		got := formatTimePosition(&tc.ts)
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got)
	}

	assert.Nil(t, formatTimePosition(nil))
}

func TestEnrichPreservesOrderAndShape(t *testing.T) {
	states := []opensky.StateVector{
		positioned(opensky.StateVector{Icao24: "c3", Callsign: "BAW3", BaroAltitude: fptr(3000)}),
		positioned(opensky.StateVector{Icao24: "c1", Callsign: "BAW1", BaroAltitude: fptr(1000)}),
		positioned(opensky.StateVector{Icao24: "c2", Callsign: "BAW2", BaroAltitude: fptr(2000)}),
	}

	flights := Enrich(states, testStore())
	require.Len(t, flights, 3)
	assert.Equal(t, "c3", flights[0].Icao24)
	assert.Equal(t, "c1", flights[1].Icao24)
	assert.Equal(t, "c2", flights[2].Icao24)

	// Empty input yields an empty, non-nil result.
	empty := Enrich(nil, testStore())
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

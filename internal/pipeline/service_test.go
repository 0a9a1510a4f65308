package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josericodata/FlightTrackingApp/internal/opensky"
	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// mockFeed counts fetches and returns a canned snapshot or error.
type mockFeed struct {
	states  []opensky.StateVector
	err     error
	fetches int
}

func (m *mockFeed) FetchStates(ctx context.Context) ([]opensky.StateVector, error) {
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.states, nil
}

func snapshotFixture() []opensky.StateVector {
	return []opensky.StateVector{
		{
			Icao24:        "400abc",
			Callsign:      "BAW123 ",
			OriginCountry: "United Kingdom",
			TimePosition:  iptr(1700000000),
			Longitude:     fptr(-0.1),
			Latitude:      fptr(51.5),
			BaroAltitude:  fptr(500),
			Velocity:      fptr(100),
		},
		{
			Icao24:        "aaaaaa",
			Callsign:      "DLH9",
			OriginCountry: "Germany",
			Longitude:     fptr(8.5),
			Latitude:      fptr(50.0),
			BaroAltitude:  fptr(11000),
			Velocity:      fptr(240),
		},
		{
			// Matching callsign but no position; dropped before enrichment.
			Icao24:        "bbbbbb",
			Callsign:      "BAW77",
			OriginCountry: "United Kingdom",
		},
	}
}

func newTestService(feed Feed) *Service {
	return NewService(feed, testStore(), time.Minute, logger.NewNop())
}

func TestProcessFlightsEndToEnd(t *testing.T) {
	feed := &mockFeed{states: snapshotFixture()}
	svc := newTestService(feed)

	result := svc.ProcessFlights(context.Background(), "BAW")
	require.Empty(t, result.Notice)
	require.Len(t, result.Flights, 1)

	f := result.Flights[0]
	assert.Equal(t, "BAW123", f.Callsign)
	assert.Equal(t, "United Kingdom", f.DepartingFrom)
	assert.Equal(t, "London Heathrow Airport", f.EstimatedArrivalAt)
	assert.Equal(t, "500.00", f.Altitude)
	assert.InDelta(t, 360.0, f.SpeedKmh, 1e-9)
	require.NotNil(t, f.TimePosition)
	assert.Equal(t, "22:13:20", *f.TimePosition)
	assert.InDelta(t, 51.5, f.Latitude, 1e-9)
	assert.InDelta(t, -0.1, f.Longitude, 1e-9)
	assert.Equal(t, "400abc", f.Icao24)
}

func TestProcessFlightsIdempotent(t *testing.T) {
	feed := &mockFeed{states: snapshotFixture()}
	svc := newTestService(feed)

	first := svc.ProcessFlights(context.Background(), "BAW")

	// Fresh service, same fixture: output must match field-for-field.
	second := newTestService(&mockFeed{states: snapshotFixture()}).ProcessFlights(context.Background(), "BAW")
	assert.Equal(t, first, second)
}

func TestProcessFlightsMemoizesPerAirline(t *testing.T) {
	feed := &mockFeed{states: snapshotFixture()}
	svc := newTestService(feed)

	first := svc.ProcessFlights(context.Background(), "BAW")
	second := svc.ProcessFlights(context.Background(), "BAW")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, feed.fetches, "re-selecting the cached airline must not re-trigger a fetch")

	// Selecting a different airline evicts the previous entry and fetches.
	svc.ProcessFlights(context.Background(), "DLH")
	assert.Equal(t, 2, feed.fetches)

	// Coming back to the first airline fetches again: single-entry policy.
	svc.ProcessFlights(context.Background(), "BAW")
	assert.Equal(t, 3, feed.fetches)
}

func TestProcessFlightsFeedStatusFailure(t *testing.T) {
	feed := &mockFeed{err: &opensky.FetchError{Kind: opensky.KindHTTPStatus, StatusCode: 503, Reason: "Service Unavailable"}}
	svc := newTestService(feed)

	result := svc.ProcessFlights(context.Background(), "BAW")
	require.NotNil(t, result.Flights)
	assert.Empty(t, result.Flights)
	assert.Contains(t, result.Notice, "503")

	// Failures are not memoized; the next call retries the feed.
	svc.ProcessFlights(context.Background(), "BAW")
	assert.Equal(t, 2, feed.fetches)
}

func TestProcessFlightsFeedNetworkFailure(t *testing.T) {
	feed := &mockFeed{err: &opensky.FetchError{Kind: opensky.KindNetwork, Reason: "connection refused"}}
	svc := newTestService(feed)

	result := svc.ProcessFlights(context.Background(), "BAW")
	assert.Empty(t, result.Flights)
	assert.Contains(t, result.Notice, "Network error")
}

func TestProcessFlightsNoMatches(t *testing.T) {
	feed := &mockFeed{states: snapshotFixture()}
	svc := newTestService(feed)

	result := svc.ProcessFlights(context.Background(), "QFA")
	require.NotNil(t, result.Flights)
	assert.Empty(t, result.Flights)
	assert.Empty(t, result.Notice)
}

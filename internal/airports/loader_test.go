package airports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

const airportsCSV = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country"
2434,"EGLL","large_airport","London Heathrow Airport",51.4706,-0.461941,83,"EU","GB"
2429,"EGKB","small_airport","London Biggin Hill Airport",51.33079,0.032211,598,"EU","GB"
3632,"KLAX","large_airport","Los Angeles International Airport",33.942501,-118.407997,125,"NA","US"
4529,"LFPG","large_airport","Charles de Gaulle International Airport",49.012798,2.55,392,"EU","FR"
6523,"00A","heliport","Total RF Heliport",40.070985,-74.933689,11,"NA","US"
`

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempCSV(t, airportsCSV)

	store, err := Load(context.Background(), path, time.Second, logger.NewNop())
	require.NoError(t, err)

	// Only the large airports survive the category filter.
	assert.Equal(t, 3, store.Len())
	assert.False(t, store.Empty())

	nearest, dist, err := store.Nearest(51.5, -0.1)
	require.NoError(t, err)
	assert.Equal(t, "London Heathrow Airport", nearest.Name)
	assert.Equal(t, "EGLL", nearest.Ident)
	assert.Greater(t, dist, 0.0)
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(airportsCSV))
	}))
	defer srv.Close()

	store, err := Load(context.Background(), srv.URL, time.Second, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), "does/not/exist.csv", time.Second, logger.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoadMissingColumn(t *testing.T) {
	// No latitude_deg column.
	path := writeTempCSV(t, "\"ident\",\"type\",\"name\",\"longitude_deg\"\n\"EGLL\",\"large_airport\",\"Heathrow\",-0.46\n")

	_, err := Load(context.Background(), path, time.Second, logger.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Contains(t, err.Error(), "latitude_deg")
}

func TestLoadHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL, time.Second, logger.NewNop())
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

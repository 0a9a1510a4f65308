// Package airports loads the airport reference table and resolves the
// nearest airport to a coordinate.
package airports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// ErrDataUnavailable indicates the airport reference table could not be
// read or is missing required columns. Enrichment cannot proceed without it.
var ErrDataUnavailable = errors.New("airport reference data unavailable")

// Only airports of this category are retained in the reference set.
const largeAirportType = "large_airport"

// Columns the source table must carry (OurAirports format).
var requiredColumns = []string{"ident", "name", "latitude_deg", "longitude_deg", "type"}

// Airport is one reference airport. Records are immutable once loaded.
type Airport struct {
	Ident string  `json:"ident"`
	Name  string  `json:"name"`
	Lat   float64 `json:"latitude_deg"`
	Lon   float64 `json:"longitude_deg"`
	Type  string  `json:"type"`
}

// Store holds the loaded reference set, read-only for the process lifetime.
type Store struct {
	airports []Airport
}

// NewStore creates a store from an already-assembled airport slice.
// Mostly useful for tests; production code goes through Load.
func NewStore(airports []Airport) *Store {
	return &Store{airports: airports}
}

// Load reads the airport reference table from a local CSV snapshot file or
// an HTTP endpoint, keeping only large airports. Any failure to read or
// parse the source wraps ErrDataUnavailable.
func Load(ctx context.Context, source string, timeout time.Duration, log *logger.Logger) (*Store, error) {
	log = log.Named("airports")

	reader, closer, err := openSource(ctx, source, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer closer()

	airports, err := parseTable(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	log.Info("Loaded airport reference data",
		logger.String("source", source),
		logger.Int("large_airports", len(airports)),
	)

	return &Store{airports: airports}, nil
}

// openSource returns a reader for the configured source, which is either a
// local file path or an http(s) URL.
func openSource(ctx context.Context, source string, timeout time.Duration) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create request: %v", err)
		}

		client := &http.Client{Timeout: timeout}
		resp, err := client.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch airport table: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("unexpected status code fetching airport table: %d", resp.StatusCode)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open airport table: %v", err)
	}
	return file, func() { file.Close() }, nil
}

// parseTable reads the CSV, validates the header and projects each retained
// row to the Airport schema.
func parseTable(r io.Reader) ([]Airport, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %v", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var airports []Airport
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %v", err)
		}

		if record[cols["type"]] != largeAirportType {
			continue
		}

		lat, err := strconv.ParseFloat(record[cols["latitude_deg"]], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(record[cols["longitude_deg"]], 64)
		if err != nil {
			continue
		}

		airports = append(airports, Airport{
			Ident: record[cols["ident"]],
			Name:  record[cols["name"]],
			Lat:   lat,
			Lon:   lon,
			Type:  record[cols["type"]],
		})
	}

	return airports, nil
}

// Empty reports whether the reference set holds no airports. Callers should
// check this once per pipeline invocation instead of hitting Nearest per row.
func (s *Store) Empty() bool {
	return len(s.airports) == 0
}

// Len returns the number of airports in the reference set.
func (s *Store) Len() int {
	return len(s.airports)
}

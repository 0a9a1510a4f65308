// Package airlines loads and normalizes the airline directory used for
// carrier selection.
package airlines

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// OpenFlights positional column indices.
const (
	colName     = 1
	colICAO     = 4
	colActive   = 7
	columnCount = 8
)

// nullSentinel marks absent values in the OpenFlights dataset.
const nullSentinel = `\N`

// Airline is one selectable carrier. Code is the ICAO short code used as
// the callsign-prefix matcher.
type Airline struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"` // "Name - Code", for display
}

// Client fetches the airline directory over HTTP.
type Client struct {
	sourceURL  string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new airline directory client
func NewClient(sourceURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		sourceURL: sourceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("airlines"),
	}
}

// Fetch retrieves the directory and returns active airlines with a known
// ICAO code, sorted for display: letter-prefixed names alphabetically
// first (case-insensitive), digit-prefixed names after, also alphabetical.
func (c *Client) Fetch(ctx context.Context) ([]Airline, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Fetching airline directory", logger.String("url", c.sourceURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airline directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code fetching airline directory: %d", resp.StatusCode)
	}

	airlines, err := parseDirectory(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse airline directory: %w", err)
	}

	sortForDisplay(airlines)

	c.logger.Debug("Fetched airline directory", logger.Int("airlines", len(airlines)))
	return airlines, nil
}

// parseDirectory reads the headerless OpenFlights CSV, retaining active
// rows with a usable ICAO code.
func parseDirectory(r io.Reader) ([]Airline, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var airlines []Airline
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < columnCount {
			continue
		}

		code := record[colICAO]
		name := strings.TrimSpace(record[colName])
		if record[colActive] != "Y" || code == "" || code == nullSentinel || name == "" || name == nullSentinel {
			continue
		}

		airlines = append(airlines, Airline{
			Code:  code,
			Name:  name,
			Label: name + " - " + code,
		})
	}

	return airlines, nil
}

// sortForDisplay orders the list alphabetically (case-insensitive) with
// every digit-prefixed name placed after all letter-prefixed names.
func sortForDisplay(airlines []Airline) {
	sort.SliceStable(airlines, func(i, j int) bool {
		di, dj := startsWithDigit(airlines[i].Name), startsWithDigit(airlines[j].Name)
		if di != dj {
			return !di
		}
		return strings.ToLower(airlines[i].Name) < strings.ToLower(airlines[j].Name)
	})
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

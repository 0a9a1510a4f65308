package opensky

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// Client is responsible for fetching the global state-vector snapshot.
type Client struct {
	sourceURL   string
	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

// NewClient creates a new feed client. accessToken may be empty for
// anonymous (rate-limited) access.
func NewClient(sourceURL, accessToken string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		sourceURL:   sourceURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("opensky"),
	}
}

// FetchStates performs one synchronous retrieval of the global snapshot.
// Failures come back as *FetchError; the caller converts them to an empty
// result set plus a surfaced message rather than propagating further.
func (c *Client) FetchStates(ctx context.Context) ([]StateVector, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, Reason: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("Fetching state vectors", logger.String("url", c.sourceURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to reach feed", logger.Error(err), logger.String("url", c.sourceURL))
		return nil, &FetchError{Kind: KindNetwork, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Feed returned non-OK status",
			logger.Int("status_code", resp.StatusCode),
			logger.String("url", c.sourceURL))
		return nil, &FetchError{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	var payload statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("Failed to decode feed response", logger.Error(err))
		return nil, &FetchError{Kind: KindUnexpected, Reason: err.Error(), Err: err}
	}

	states := make([]StateVector, 0, len(payload.States))
	for _, s := range payload.States {
		states = append(states, parseState(s))
	}

	c.logger.Debug("Fetched state vectors",
		logger.Int("count", len(states)),
		logger.Int64("snapshot_time", payload.Time),
	)

	return states, nil
}

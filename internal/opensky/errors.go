package opensky

import "fmt"

// ErrorKind classifies a feed fetch failure. Each kind carries a distinct
// user-presentable message; none are retried automatically.
type ErrorKind int

const (
	// KindHTTPStatus is a non-200 response from the feed.
	KindHTTPStatus ErrorKind = iota
	// KindNetwork is a connection or timeout failure.
	KindNetwork
	// KindUnexpected covers anything else (malformed payload, etc).
	KindUnexpected
)

// FetchError describes a failed snapshot retrieval. Downstream it yields an
// empty result set with Message surfaced to the caller for display.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int    // set when Kind is KindHTTPStatus
	Reason     string // status reason or underlying error text
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("feed returned status %d - %s", e.StatusCode, e.Reason)
	case KindNetwork:
		return fmt.Sprintf("feed network failure: %s", e.Reason)
	default:
		return fmt.Sprintf("unexpected feed failure: %s", e.Reason)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable text surfaced to the presentation
// layer. It never exposes error internals.
func (e *FetchError) Message() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf(
			"Flight feed error: %d - %s. The live flight feed is currently unavailable or experiencing issues. Please try again later.",
			e.StatusCode, e.Reason)
	case KindNetwork:
		return "Network error: unable to connect to the live flight feed. Please check your internet connection and try again."
	default:
		return "Unexpected error while fetching flight data. Please refresh and try again later."
	}
}

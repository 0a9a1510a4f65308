package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/josericodata/FlightTrackingApp/internal/airports"
	"github.com/josericodata/FlightTrackingApp/internal/opensky"
	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// Feed abstracts the live state-vector source.
type Feed interface {
	FetchStates(ctx context.Context) ([]opensky.StateVector, error)
}

// Processor is the interface the API layer depends on.
type Processor interface {
	ProcessFlights(ctx context.Context, airlineCode string) Result
}

// Service orchestrates one pipeline invocation: fetch snapshot, filter for
// the selected airline, enrich. Results are memoized per airline code with
// a single-entry eviction policy: selecting a different airline flushes the
// previous entry.
type Service struct {
	feed   Feed
	store  *airports.Store
	cache  *cache.Cache
	ttl    time.Duration
	logger *logger.Logger

	mu       sync.Mutex
	lastCode string
}

// NewService creates a new pipeline service. The airport store is the
// read-only reference set loaded at startup.
func NewService(feed Feed, store *airports.Store, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		feed:   feed,
		store:  store,
		cache:  cache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: log.Named("pipeline"),
	}
}

const cacheKeyPrefix = "flights:"

// ProcessFlights runs the pipeline for the selected airline code. Feed
// failures degrade to an empty flight table with a surfaced notice; no
// error crosses this boundary. Identical inputs produce identical output.
func (s *Service) ProcessFlights(ctx context.Context, airlineCode string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Single-entry-per-session eviction: a new selection invalidates the
	// previous airline's memoized result.
	if airlineCode != s.lastCode {
		s.cache.Flush()
		s.lastCode = airlineCode
	}

	key := cacheKeyPrefix + airlineCode
	if cached, found := s.cache.Get(key); found {
		s.logger.Debug("Serving memoized flight data", logger.String("airline", airlineCode))
		return cached.(Result)
	}

	start := time.Now()
	states, err := s.feed.FetchStates(ctx)
	if err != nil {
		s.logger.Warn("Feed fetch failed",
			logger.String("airline", airlineCode),
			logger.Error(err),
		)
		// Empty but correctly-shaped result plus a presentable message.
		// Failures are not memoized so the next selection retries.
		return Result{Flights: []EnrichedFlight{}, Notice: noticeFor(err)}
	}

	filtered := dropMissingPositions(FilterByAirline(states, airlineCode))
	flights := Enrich(filtered, s.store)

	s.logger.Info("Processed flight snapshot",
		logger.String("airline", airlineCode),
		logger.Int("snapshot_size", len(states)),
		logger.Int("matched", len(flights)),
		logger.Duration("elapsed", time.Since(start)),
	)

	result := Result{Flights: flights}
	s.cache.Set(key, result, s.ttl)
	return result
}

// noticeFor maps a feed failure to its user-presentable message.
func noticeFor(err error) string {
	if fetchErr, ok := err.(*opensky.FetchError); ok {
		return fetchErr.Message()
	}
	return "Unexpected error while fetching flight data. Please refresh and try again later."
}

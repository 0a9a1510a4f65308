package airlines

import (
	"context"
	"sync"

	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// Message surfaced when the directory source cannot be reached. The caller
// renders it next to an empty selector; nothing is thrown.
const unavailableNotice = "Airline directory is currently unavailable. Please try again later."

// Directory is the interface the API layer depends on for airline selection.
type Directory interface {
	Airlines(ctx context.Context) ([]Airline, string)
}

// Service caches the directory for the lifetime of the session and degrades
// a fetch failure to an empty selector instead of an error.
type Service struct {
	client *Client
	logger *logger.Logger

	mu     sync.Mutex
	cached []Airline
	loaded bool
}

// NewService creates a new airline directory service
func NewService(client *Client, log *logger.Logger) *Service {
	return &Service{
		client: client,
		logger: log.Named("airlines-svc"),
	}
}

// Airlines returns the airline list plus a user-presentable notice when the
// directory is unavailable. The list is never nil. A successful fetch is
// kept for the rest of the session; failures are retried on the next call.
func (s *Service) Airlines(ctx context.Context) ([]Airline, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cached, ""
	}

	airlines, err := s.client.Fetch(ctx)
	if err != nil {
		s.logger.Warn("Airline directory unavailable", logger.Error(err))
		return []Airline{}, unavailableNotice
	}

	s.cached = airlines
	s.loaded = true
	return s.cached, ""
}

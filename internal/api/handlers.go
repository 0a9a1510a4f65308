// Package api exposes the flight pipeline over a small JSON HTTP surface.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/josericodata/FlightTrackingApp/internal/airlines"
	"github.com/josericodata/FlightTrackingApp/internal/config"
	"github.com/josericodata/FlightTrackingApp/internal/flightmap"
	"github.com/josericodata/FlightTrackingApp/internal/pipeline"
	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	processor  pipeline.Processor
	directory  airlines.Directory
	mapBuilder *flightmap.Builder
	logger     *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(processor pipeline.Processor, directory airlines.Directory, mapBuilder *flightmap.Builder, log *logger.Logger) *Handler {
	return &Handler{
		processor:  processor,
		directory:  directory,
		mapBuilder: mapBuilder,
		logger:     log.Named("api-handler"),
	}
}

// airlinesResponse is the payload for the airline selector.
type airlinesResponse struct {
	Airlines []airlines.Airline `json:"airlines"`
	Notice   string             `json:"notice,omitempty"`
}

// flightsResponse wraps one pipeline invocation for display.
type flightsResponse struct {
	Timestamp time.Time                 `json:"timestamp"`
	Airline   string                    `json:"airline"`
	Count     int                       `json:"count"`
	Flights   []pipeline.EnrichedFlight `json:"flights"`
	Notice    string                    `json:"notice,omitempty"`
}

// GetAirlines returns the selectable airline directory. An unreachable
// directory degrades to an empty list plus a notice.
func (h *Handler) GetAirlines(w http.ResponseWriter, r *http.Request) {
	list, notice := h.directory.Airlines(r.Context())
	h.respondJSON(w, http.StatusOK, airlinesResponse{Airlines: list, Notice: notice})
}

// GetFlights runs the pipeline for the selected airline code.
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("airline")
	if code == "" {
		h.respondError(w, http.StatusBadRequest, "missing required query parameter: airline")
		return
	}

	result := h.processor.ProcessFlights(r.Context(), code)
	h.respondJSON(w, http.StatusOK, flightsResponse{
		Timestamp: time.Now().UTC(),
		Airline:   code,
		Count:     len(result.Flights),
		Flights:   result.Flights,
		Notice:    result.Notice,
	})
}

// GetFlightMap returns the map projection for the selected airline's
// enriched flights.
func (h *Handler) GetFlightMap(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("airline")
	if code == "" {
		h.respondError(w, http.StatusBadRequest, "missing required query parameter: airline")
		return
	}

	result := h.processor.ProcessFlights(r.Context(), code)
	h.respondJSON(w, http.StatusOK, h.mapBuilder.Build(result.Flights))
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Router builds the HTTP routing tree.
type Router struct {
	handler *Handler
	config  *config.Config
	logger  *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(processor pipeline.Processor, directory airlines.Directory, mapBuilder *flightmap.Builder, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler: NewHandler(processor, directory, mapBuilder, log),
		config:  cfg,
		logger:  log.Named("router"),
	}
}

// Routes returns the configured route tree.
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.handler.HealthCheck)
		r.Get("/airlines", rt.handler.GetAirlines)
		r.Get("/flights", rt.handler.GetFlights)
		r.Get("/flights/map", rt.handler.GetFlightMap)
	})

	// Serve the bundled UI when a static directory is configured.
	if rt.config.Server.StaticFilesDir != "" {
		staticHandler := NewStaticFileHandler(rt.config.Server.StaticFilesDir, rt.logger)
		r.NotFound(staticHandler.ServeHTTP)
	}

	return r
}

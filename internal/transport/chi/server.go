// Package chi exposes the complaint exploration API over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/page"
	"github.com/citydata-labs/crimedex/internal/domain/vocab"
	healthuc "github.com/citydata-labs/crimedex/internal/usecase/health"
)

// Explorer runs paginated and map-point retrievals.
type Explorer interface {
	Page(ctx context.Context, params map[string]string) (page.Result, error)
	Points(ctx context.Context, params map[string]string) ([]db.Document, error)
}

// Faceter aggregates facet frequencies.
type Faceter interface {
	Facets(ctx context.Context) (map[string][]db.FacetEntry, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server wires the exploration services to their HTTP routes.
type Server struct {
	explorer Explorer
	facets   Faceter
	vocab    vocab.Registry
	health   HealthChecker
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	explorer Explorer,
	facets Faceter,
	registry vocab.Registry,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	return &Server{
		explorer: explorer,
		facets:   facets,
		vocab:    registry,
		health:   health,
		logger:   logger,
	}
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/api/recherche", s.Search)
	r.Get("/api/carte", s.MapPoints)
	r.Get("/api/facettes", s.Facets)
	r.Get("/api/vocabulaire", s.Vocabulary)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /api/recherche.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	result, err := s.explorer.Page(r.Context(), queryParams(r))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MapPoints handles GET /api/carte. The response body is a bare array.
func (s *Server) MapPoints(w http.ResponseWriter, r *http.Request) {
	docs, err := s.explorer.Points(r.Context(), queryParams(r))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Facets handles GET /api/facettes.
func (s *Server) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := s.facets.Facets(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facets)
}

// vocabToken is one standardized token with its display label.
type vocabToken struct {
	Token  string        `json:"token"`
	Label  string        `json:"label"`
	Bounds *boundsFields `json:"bounds,omitempty"`
}

type boundsFields struct {
	Min    *int `json:"min"`
	Max    *int `json:"max"`
	Approx *int `json:"approx"`
}

// Vocabulary handles GET /api/vocabulaire. It publishes the standardized
// tokens the filter parameters accept, so the UI never hardcodes them.
func (s *Server) Vocabulary(w http.ResponseWriter, _ *http.Request) {
	sex := s.vocab.Sex()
	sexTokens := make([]vocabToken, 0, len(sex.Order()))
	for _, std := range sex.Order() {
		sexTokens = append(sexTokens, vocabToken{Token: std, Label: sex.Label(std)})
	}

	age := s.vocab.Age()
	ageTokens := make([]vocabToken, 0, len(age.Order()))
	for _, std := range age.Order() {
		b := vocab.AgeBounds(ageLabelFor(std))
		ageTokens = append(ageTokens, vocabToken{
			Token:  std,
			Label:  age.Label(std),
			Bounds: &boundsFields{Min: b.Min, Max: b.Max, Approx: b.Approx},
		})
	}

	writeJSON(w, http.StatusOK, map[string][]vocabToken{
		"sex": sexTokens,
		"age": ageTokens,
	})
}

// ageLabelFor maps a standardized age token to the stored bracket label its
// bounds derive from.
func ageLabelFor(std string) string {
	switch std {
	case "0-17":
		return "<18"
	case "INCONNU":
		return "UNKNOWN"
	default:
		return std
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryParams flattens the URL query into a single-valued map. Repeated
// parameters keep their first value, matching net/url.Values.Get.
func queryParams(r *http.Request) map[string]string {
	values := r.URL.Query()
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		s.logger.Error("store error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "store_unavailable", "document store request failed")
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

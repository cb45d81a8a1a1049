// Package vitalsapi exposes triage classification over HTTP.
package vitalsapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/pulse/internal/intake"
	"github.com/linnemanlabs/pulse/internal/triage"
)

// TriageService defines the business operations vitalsapi needs.
type TriageService interface {
	Assess(ctx context.Context, v triage.VitalSigns) *triage.Assessment
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger     log.Logger
	svc        TriageService
	middleware []func(http.Handler) http.Handler
}

// New creates a new API handler. Middleware is applied to every /api/v1 route.
func New(logger log.Logger, svc TriageService, middleware ...func(http.Handler) http.Handler) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger:     logger,
		svc:        svc,
		middleware: middleware,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(a.middleware...)
		r.Post("/triage", a.handleTriage)
		r.Get("/categories", a.handleCategories)
	})
}

// triageRequest is the wire form of triage.VitalSigns. Pointers tell an
// omitted or null field apart from a real zero reading.
type triageRequest struct {
	HeartRate   *int     `json:"heart_rate"`
	Oxygen      *int     `json:"oxygen"`
	PainLevel   *int     `json:"pain_level"`
	Temperature *float64 `json:"temperature"`
}

// vitals returns the request as VitalSigns, or an error naming the first
// missing field.
func (req *triageRequest) vitals() (triage.VitalSigns, error) {
	switch {
	case req.HeartRate == nil:
		return triage.VitalSigns{}, errors.New("heart_rate is required")
	case req.Oxygen == nil:
		return triage.VitalSigns{}, errors.New("oxygen is required")
	case req.PainLevel == nil:
		return triage.VitalSigns{}, errors.New("pain_level is required")
	case req.Temperature == nil:
		return triage.VitalSigns{}, errors.New("temperature is required")
	}
	return triage.VitalSigns{
		HeartRate:   *req.HeartRate,
		Oxygen:      *req.Oxygen,
		PainLevel:   *req.PainLevel,
		Temperature: *req.Temperature,
	}, nil
}

func (a *API) handleTriage(w http.ResponseWriter, r *http.Request) {
	var req triageRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	// reject trailing garbage after the object
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	v, err := req.vitals()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	if err := intake.Validate(v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	assessment := a.svc.Assess(r.Context(), v)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("pulse.triage.id", assessment.ID),
		attribute.String("pulse.triage.category", assessment.Result.Category.String()),
	)

	writeJSON(w, http.StatusOK, assessment)
}

type categoryInfo struct {
	Category   triage.Category `json:"category"`
	Severity   int             `json:"severity"`
	Treatment  string          `json:"treatment"`
	Medication string          `json:"medication"`
}

func (a *API) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cats := triage.Categories()
	out := make([]categoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryInfo{
			Category:   c,
			Severity:   c.Severity(),
			Treatment:  triage.Treatment(c),
			Medication: triage.Medication,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// summaries contain '&', keep it literal
	enc.SetEscapeHTML(false)
	// nothing useful to do with a write error once the header is out
	_ = enc.Encode(v)
}

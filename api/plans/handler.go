// Package plans exposes the planner over HTTP.
package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/kilianp07/transitplan/app"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/infra/logger"
	"github.com/kilianp07/transitplan/infra/store"
	"github.com/kilianp07/transitplan/pkg/ingest"
)

const (
	defaultListLimit = 20
	maxBodyBytes     = 4 << 20
)

// Planner is the subset of app.Planner the handlers need.
type Planner interface {
	Plan(ctx context.Context, req app.Request) (app.Outcome, error)
	Get(ctx context.Context, id string) (store.Run, error)
	List(ctx context.Context, limit int) ([]store.Summary, error)
}

// Handler serves the plans API.
type Handler struct {
	planner Planner
	limiter *rate.Limiter
	log     logger.Logger
	mux     *http.ServeMux
}

// NewHandler routes POST /api/plans, GET /api/plans and GET /api/plans/{id}.
// A nil limiter disables rate limiting of plan submissions.
func NewHandler(p Planner, limiter *rate.Limiter) *Handler {
	h := &Handler{planner: p, limiter: limiter, log: logger.New("plans_api"), mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /api/plans", h.create)
	h.mux.HandleFunc("GET /api/plans", h.list)
	h.mux.HandleFunc("GET /api/plans/{id}", h.get)
	return h
}

// NewLimiter returns a limiter for perSecond requests with the given burst,
// or nil when perSecond is zero.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorBody{Error: err.Error()})
}

// decodeRequest accepts a JSON app.Request or, for text/csv bodies, a route
// table with the window taken from the start and end query parameters.
func decodeRequest(w http.ResponseWriter, r *http.Request) (app.Request, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		routes, err := ingest.ParseRoutes(body)
		if err != nil {
			return app.Request{}, err
		}
		q := r.URL.Query()
		return app.Request{Routes: routes, Window: model.TimeRange{Start: q.Get("start"), End: q.Get("end")}}, nil
	}
	var req app.Request
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return app.Request{}, err
	}
	return req, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		h.writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
		return
	}
	req, err := decodeRequest(w, r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.planner.Plan(r.Context(), req)
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		h.log.Errorf("plan request failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, errors.New("planning failed"))
		return
	}
	status := http.StatusCreated
	if out.Cached {
		status = http.StatusOK
	}
	w.Header().Set("Location", "/api/plans/"+out.Run.ID)
	h.writeJSON(w, status, out.Run)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	run, err := h.planner.Get(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		h.log.Errorf("get run: %v", err)
		h.writeError(w, http.StatusInternalServerError, errors.New("lookup failed"))
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	runs, err := h.planner.List(r.Context(), limit)
	if err != nil {
		h.log.Errorf("list runs: %v", err)
		h.writeError(w, http.StatusInternalServerError, errors.New("listing failed"))
		return
	}
	if runs == nil {
		runs = []store.Summary{}
	}
	h.writeJSON(w, http.StatusOK, runs)
}

// Package api provides the HTTP page shell for khata.
// Each GET re-derives its view from the store, so every URL is
// re-entrant: reloading it reproduces the same state deterministically.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/khata-pos/khata/internal/directory"
	"github.com/khata-pos/khata/internal/domain"
	"github.com/khata-pos/khata/internal/ledger"
)

// Server is the khata HTTP server.
type Server struct {
	ledger         *ledger.Service
	directory      *directory.Service
	log            zerolog.Logger
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(led *ledger.Service, dir *directory.Service, log zerolog.Logger) *Server {
	return &Server{ledger: led, directory: dir, log: log}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Loan ledger: the three-level drill-down plus mutations
	r.Route("/ledger", func(r chi.Router) {
		r.Get("/", s.handleLedgerView)
		r.Get("/summary", s.handleLedgerSummary)
		r.Post("/entries", s.handleAddEntry)
		r.Delete("/transactions/{id}", s.handleSettle)
	})

	// Customer directory collaborator
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", s.handleListCustomers)
		r.Post("/", s.handleAddCustomer)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Ledger Handlers ────────────────────────────────────────────────────────

// handleLedgerView resolves the navigation state machine.
// GET /ledger?customer=NAME&transaction=ID
func (s *Server) handleLedgerView(w http.ResponseWriter, r *http.Request) {
	route := ledger.Route{
		Customer:    r.URL.Query().Get("customer"),
		Transaction: r.URL.Query().Get("transaction"),
	}

	view, err := s.ledger.Resolve(route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pageViews.WithLabelValues(view.Kind.String()).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"view":        view.Kind.String(),
		"redirected":  view.Redirected,
		"overview":    view.Overview,
		"customer":    view.Customer,
		"transaction": view.Transaction,
	})
}

// handleLedgerSummary returns the ledger-wide roll-up.
// GET /ledger/summary
func (s *Server) handleLedgerSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.Summarize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleAddEntry confirms a draft entry: a new debt (positive amount) or
// a payment received (negative amount).
// POST /ledger/entries {"customer": "...", "amount": 5000}
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer string        `json:"customer"`
		Amount   domain.Amount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Non-numeric amounts decode as zero and fail the nonzero check
	// below, so both reject with the same validation failure.
	txn, err := s.ledger.AddLoanOrPayment(req.Customer, req.Amount)
	if errors.Is(err, domain.ErrZeroAmount) || errors.Is(err, domain.ErrEmptyCustomer) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	mutations.WithLabelValues("add_entry").Inc()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": txn,
		"next":        "/ledger" + ledger.CustomerRoute(txn.Customer).Query(),
	})
}

// handleSettle hard-deletes a transaction. Confirmation is the client's
// responsibility; the operation is idempotent, so settling an unknown id
// still succeeds. The caller is redirected to the overview.
// DELETE /ledger/transactions/{id}
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "transaction id must be numeric")
		return
	}

	if err := s.ledger.Settle(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	mutations.WithLabelValues("settle").Inc()

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "settled",
		"next":   "/ledger",
	})
}

// ─── Customer Directory Handlers ────────────────────────────────────────────

// handleListCustomers returns the directory sorted by name.
// GET /customers
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.directory.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

// handleAddCustomer registers a new customer.
// POST /customers {"name": "..."}
func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	customer, err := s.directory.Add(req.Name)
	if errors.Is(err, domain.ErrEmptyCustomer) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, domain.ErrDuplicateCustomer) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

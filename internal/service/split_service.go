package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rachaconta/backend/internal/calculator"
	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/storage"
)

// SplitService serves bill split calculations, the plain-text summary
// export, and the saved calculation history.
type SplitService struct {
	store storage.Store
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store) *SplitService {
	return &SplitService{store: store}
}

// Register mounts the split endpoints on mux.
func (s *SplitService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/split/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/v1/split/summary", s.handleSummary)
	mux.HandleFunc("POST /api/v1/split/save", s.handleSave)
	mux.HandleFunc("GET /api/v1/split/history", s.handleHistory)
}

// decodeInput parses and normalizes a calculator input from the request.
func decodeInput(r *http.Request) (calculator.Input, error) {
	var in calculator.Input
	if err := decodeJSON(r, &in); err != nil {
		return in, err
	}
	if in.DivisionMode == "" {
		in.DivisionMode = models.DivisionEqual
	}
	if !in.DivisionMode.IsValid() {
		return in, fmt.Errorf("unknown division mode %q", in.DivisionMode)
	}
	return in, nil
}

// handleCalculate computes the derived state for a form snapshot.
// The engine itself never fails; only malformed request bodies are rejected.
func (s *SplitService) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	res := calculator.Compute(in)
	metrics.SplitCalculations.WithLabelValues(string(in.DivisionMode)).Inc()
	writeJSON(w, http.StatusOK, res)
}

// handleSummary renders the downloadable plain-text summary with its fixed
// filename.
func (s *SplitService) handleSummary(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	summary := calculator.Summary(in, calculator.Compute(in))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calculator.SummaryFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(summary)); err != nil {
		slog.Error("Failed to write summary", "error", err)
	}
}

// handleSave computes and persists a calculation for the history view.
func (s *SplitService) handleSave(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	res := calculator.Compute(in)
	calc := &models.Calculation{
		BillAmount:    res.BillAmount,
		TipPercentage: in.TipPercentage,
		TipAmount:     res.TipAmount,
		TotalBill:     res.TotalBill,
		DivisionMode:  in.DivisionMode,
		Shares:        shares(in, res),
	}

	if err := s.store.SaveCalculation(r.Context(), calc); err != nil {
		slog.Error("SaveCalculation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to save calculation")
		return
	}

	writeJSON(w, http.StatusOK, calc)
}

// shares flattens the computed result into the stored per-person breakdown:
// the custom amounts in percentage mode, one synthetic entry per head in
// equal mode.
func shares(in calculator.Input, res calculator.Result) []models.PersonAmount {
	if in.DivisionMode == models.DivisionPercentage {
		return res.Individual
	}
	out := make([]models.PersonAmount, res.SplitCount)
	for i := range out {
		out[i] = models.PersonAmount{
			Name:   fmt.Sprintf("Person %d", i+1),
			Amount: res.PerPersonAmount,
		}
	}
	return out
}

// handleHistory lists saved calculations, newest first. An optional ?limit=
// query parameter lowers the default page size.
func (s *SplitService) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	calcs, err := s.store.ListCalculations(r.Context(), limit)
	if err != nil {
		slog.Error("ListCalculations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to list calculations")
		return
	}
	if calcs == nil {
		calcs = []models.Calculation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": calcs})
}

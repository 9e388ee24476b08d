package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rachaconta/backend/internal/calculator"
	"github.com/rachaconta/backend/internal/form"
	"github.com/rachaconta/backend/internal/models"
)

// FormService exposes the shared bill form over HTTP. The server hosts one
// form, mirroring the single bill the web client edits at a time; every
// mutation responds with the refreshed state and derived amounts.
type FormService struct {
	form *form.Form
}

// NewFormService creates a new FormService around f.
func NewFormService(f *form.Form) *FormService {
	return &FormService{form: f}
}

// Register mounts the form endpoints on mux.
func (s *FormService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/form", s.handleGet)
	mux.HandleFunc("POST /api/v1/form/reset", s.handleReset)
	mux.HandleFunc("PUT /api/v1/form/bill", s.handleBill)
	mux.HandleFunc("PUT /api/v1/form/tip", s.handleTip)
	mux.HandleFunc("PUT /api/v1/form/mode", s.handleMode)
	mux.HandleFunc("PUT /api/v1/form/split-count", s.handleSplitCount)
	mux.HandleFunc("POST /api/v1/form/people", s.handleAddPerson)
	mux.HandleFunc("PUT /api/v1/form/people/{id}", s.handleUpdatePerson)
	mux.HandleFunc("DELETE /api/v1/form/people/{id}", s.handleRemovePerson)
	mux.HandleFunc("POST /api/v1/form/suggestion", s.handleApplySuggestion)
}

// formView is the response for every form endpoint: the raw inputs plus the
// recomputed derived amounts.
type formView struct {
	State  models.BillState  `json:"state"`
	Result calculator.Result `json:"result"`
}

func (s *FormService) writeView(w http.ResponseWriter) {
	_, res := s.form.Snapshot()
	writeJSON(w, http.StatusOK, formView{State: s.form.State(), Result: res})
}

func (s *FormService) handleGet(w http.ResponseWriter, r *http.Request) {
	s.writeView(w)
}

func (s *FormService) handleReset(w http.ResponseWriter, r *http.Request) {
	s.form.Reset()
	s.writeView(w)
}

func (s *FormService) handleBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BillAmount string `json:"billAmount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	s.form.SetBillAmount(req.BillAmount)
	s.writeView(w)
}

// handleTip accepts either a committed percentage (slider) or raw typed text
// (debounced). Exactly one of the two fields must be present.
func (s *FormService) handleTip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Percentage *float64 `json:"percentage"`
		Input      *string  `json:"input"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	switch {
	case req.Percentage != nil && req.Input == nil:
		if *req.Percentage < 0 || *req.Percentage > 100 {
			writeError(w, http.StatusBadRequest, "bad_request", "percentage must be between 0 and 100")
			return
		}
		s.form.SetTipPercentage(*req.Percentage)
	case req.Input != nil && req.Percentage == nil:
		s.form.SetTipInput(*req.Input)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "provide exactly one of percentage or input")
		return
	}
	s.writeView(w)
}

func (s *FormService) handleMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode models.DivisionMode `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if !req.Mode.IsValid() {
		writeError(w, http.StatusBadRequest, "bad_request", "unknown division mode")
		return
	}
	s.form.SetDivisionMode(req.Mode)
	s.writeView(w)
}

func (s *FormService) handleSplitCount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	s.form.SetSplitCount(req.Count)
	s.writeView(w)
}

func (s *FormService) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.form.AddPerson())
}

func (s *FormService) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       *string `json:"name"`
		Percentage *string `json:"percentage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	id := r.PathValue("id")
	if req.Name != nil {
		if err := s.form.UpdatePersonName(id, *req.Name); err != nil {
			writePersonError(w, err)
			return
		}
	}
	if req.Percentage != nil {
		if err := s.form.UpdatePersonPercentage(id, *req.Percentage); err != nil {
			writePersonError(w, err)
			return
		}
	}
	s.writeView(w)
}

func (s *FormService) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.form.RemovePerson(r.PathValue("id")); err != nil {
		writePersonError(w, err)
		return
	}
	s.writeView(w)
}

func writePersonError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrLastPerson):
		writeError(w, http.StatusConflict, "last_person", err.Error())
	case errors.Is(err, form.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// handleApplySuggestion feeds a result obtained from the suggestion endpoint
// into the form's tip state.
func (s *FormService) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestionResult
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.SuggestedTipPercentage < 0 || req.SuggestedTipPercentage > 100 {
		writeError(w, http.StatusBadRequest, "bad_request", "suggestedTipPercentage must be between 0 and 100")
		return
	}
	if strings.TrimSpace(req.Reasoning) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "reasoning must not be empty")
		return
	}
	s.form.ApplySuggestion(req)
	s.writeView(w)
}

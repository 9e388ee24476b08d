package service

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rachaconta/backend/internal/form"
	"github.com/rachaconta/backend/internal/models"
)

func setupFormServer(t *testing.T, opts ...form.Option) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	NewFormService(form.New(opts...)).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getFormView(t *testing.T, srv *httptest.Server) formView {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/v1/form")
	if err != nil {
		t.Fatalf("GET form failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET form status = %d, want 200", resp.StatusCode)
	}
	var view formView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode form view: %v", err)
	}
	return view
}

func TestFormDefaultsAndEqualSplitFlow(t *testing.T) {
	srv := setupFormServer(t)

	view := getFormView(t, srv)
	if view.State.TipPercentage != 15 || view.State.SplitCount != 1 || view.State.DivisionMode != models.DivisionEqual {
		t.Fatalf("unexpected defaults: %+v", view.State)
	}

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/bill", "", map[string]string{"billAmount": "100"})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/tip", "", map[string]float64{"percentage": 20})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/split-count", "", map[string]int{"count": 4})
	resp.Body.Close()

	view = getFormView(t, srv)
	if math.Abs(view.Result.PerPersonAmount-30) > 1e-9 {
		t.Errorf("PerPersonAmount = %v, want 30", view.Result.PerPersonAmount)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/form/reset", "", nil)
	resp.Body.Close()
	view = getFormView(t, srv)
	if view.State.BillAmount != "" || view.State.TipPercentage != 15 {
		t.Errorf("reset did not restore defaults: %+v", view.State)
	}
}

func TestFormTipRejectsOutOfRange(t *testing.T) {
	srv := setupFormServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/tip", "", map[string]float64{"percentage": 120})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/tip", "", map[string]any{"percentage": 10, "input": "20"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("both fields present: status = %d, want 400", resp.StatusCode)
	}
}

func TestFormTypedTipCommitsAfterQuiescence(t *testing.T) {
	srv := setupFormServer(t, form.WithTipCommitDelay(10*time.Millisecond))

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/tip", "", map[string]string{"input": "18.5"})
	resp.Body.Close()

	time.Sleep(50 * time.Millisecond)
	view := getFormView(t, srv)
	if math.Abs(view.State.TipPercentage-18.5) > 1e-9 {
		t.Errorf("TipPercentage = %v, want 18.5", view.State.TipPercentage)
	}
}

func TestFormPersonLifecycle(t *testing.T) {
	srv := setupFormServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/mode", "", map[string]string{"mode": "percentage"})
	var view formView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	resp.Body.Close()
	if len(view.State.People) != 1 {
		t.Fatalf("percentage mode should seed one person, got %d", len(view.State.People))
	}
	first := view.State.People[0]

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/form/people", "", nil)
	var second models.Person
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatalf("failed to decode person: %v", err)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/bill", "", map[string]string{"billAmount": "90"})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/people/"+first.ID, "",
		map[string]string{"name": "Ana", "percentage": "60"})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/people/"+second.ID, "",
		map[string]string{"percentage": "40"})
	resp.Body.Close()

	view = getFormView(t, srv)
	if !view.Result.SplitValid || len(view.Result.Individual) != 2 {
		t.Fatalf("expected a valid two-way split, got %+v", view.Result)
	}
	if view.Result.Individual[0].Name != "Ana" {
		t.Errorf("Individual[0].Name = %q, want Ana", view.Result.Individual[0].Name)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/form/people/nope", "", map[string]string{"name": "X"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown person status = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/form/people/"+second.ID, "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/form/people/"+first.ID, "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("deleting the last person status = %d, want 409", resp.StatusCode)
	}
}

func TestFormApplySuggestion(t *testing.T) {
	srv := setupFormServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/form/suggestion", "",
		map[string]any{"suggestedTipPercentage": 18, "reasoning": "casa tradicional"})
	var view formView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	resp.Body.Close()
	if view.State.TipPercentage != 18 {
		t.Errorf("TipPercentage = %v, want 18", view.State.TipPercentage)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/form/suggestion", "",
		map[string]any{"suggestedTipPercentage": 150, "reasoning": "x"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out-of-range suggestion status = %d, want 400", resp.StatusCode)
	}
}

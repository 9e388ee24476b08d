package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/storage"
	"github.com/rachaconta/backend/internal/suggest"
)

// suggester is the slice of the suggestion client the service needs.
type suggester interface {
	Suggest(ctx context.Context, restaurantURL, credential string) (*models.SuggestionResult, error)
}

// SuggestService serves AI tip suggestions. At most one request is in flight
// at a time; the guard is a single boolean because the invoking UI is the
// only caller.
type SuggestService struct {
	client suggester
	store  storage.Store
	busy   atomic.Bool
}

// NewSuggestService creates a new SuggestService.
func NewSuggestService(client suggester, store storage.Store) *SuggestService {
	return &SuggestService{client: client, store: store}
}

// Register mounts the suggestion endpoint on mux.
func (s *SuggestService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/tip/suggest", s.handleSuggest)
}

type suggestRequest struct {
	RestaurantURL string `json:"restaurantUrl"`
}

func (s *SuggestService) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.SuggestionRequests.WithLabelValues("busy").Inc()
		writeError(w, http.StatusConflict, "busy", "uma sugestão já está em andamento")
		return
	}
	defer s.busy.Store(false)

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		metrics.SuggestionRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	// The stored credential takes precedence; the client falls back to the
	// environment credential when none is saved.
	credential, err := s.store.GetCredential(r.Context())
	if err != nil {
		slog.Error("GetCredential failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to read stored credential")
		return
	}

	start := time.Now()
	result, err := s.client.Suggest(r.Context(), req.RestaurantURL, credential)
	metrics.SuggestionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		kind := suggest.KindOf(err)
		metrics.SuggestionRequests.WithLabelValues(kind.String()).Inc()
		slog.Warn("Suggestion failed",
			"kind", kind.String(),
			"url", req.RestaurantURL,
			"error", err,
		)
		writeError(w, statusForKind(kind), kind.String(), err.Error())
		return
	}

	metrics.SuggestionRequests.WithLabelValues("ok").Inc()
	slog.Info("Suggestion served",
		"url", req.RestaurantURL,
		"percentage", result.SuggestedTipPercentage,
	)
	writeJSON(w, http.StatusOK, result)
}

// statusForKind maps suggestion error kinds to HTTP statuses.
func statusForKind(kind suggest.Kind) int {
	switch kind {
	case suggest.KindPreconditionFailed:
		return http.StatusBadRequest
	case suggest.KindMissingCredential:
		return http.StatusUnauthorized
	case suggest.KindProviderError, suggest.KindValidationError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

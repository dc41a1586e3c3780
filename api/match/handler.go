package match

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inakineitor/algo-comp-2023/core/dataset"
	"github.com/inakineitor/algo-comp-2023/core/matching"
	"github.com/inakineitor/algo-comp-2023/core/scoring"
)

// maxBody bounds the size of a submitted population document.
const maxBody = 4 << 20

// Matcher runs a matching over a population document.
type Matcher interface {
	Match(ctx context.Context, doc dataset.Document) (matching.Result, error)
}

// NewHandler returns an HTTP handler running a matching via POST /api/match.
// The body is a JSON population document; the response is the engine result.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(m Matcher, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		doc, err := dataset.DecodeDocument(http.MaxBytesReader(w, r.Body, maxBody), "json")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := m.Match(r.Context(), doc)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if !res.Matched() {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, matching.ErrMalformedInput),
		errors.Is(err, matching.ErrDegeneratePopulation),
		errors.Is(err, matching.ErrTooManyParticipants),
		errors.Is(err, matching.ErrUnknownPreference),
		errors.Is(err, scoring.ErrEmptyPopulation),
		errors.Is(err, scoring.ErrResponseMismatch):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

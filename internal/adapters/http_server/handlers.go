// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"terminal_plus/internal/app"
	"terminal_plus/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	// DefaultAirport is used when the caller omits ?airport.
	DefaultAirport string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/collections", h.listCollections)
	s.mux.Get("/v1/collections/{id}", h.getCollection)
	s.mux.Get("/v1/amenities/{slug}", h.getAmenity)
	s.mux.Get("/v1/vibes/{vibe}/score", h.scoreVibe)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) airport(r *http.Request) string {
	if a := r.URL.Query().Get("airport"); a != "" {
		return strings.ToUpper(a)
	}
	return h.DefaultAirport
}

// hourParam parses ?hour, falling back to the server's wall clock. The
// core never reads a clock; this edge is where "now" enters the system.
func hourParam(r *http.Request) (int, bool) {
	hs := r.URL.Query().Get("hour")
	if hs == "" {
		return time.Now().Hour(), true
	}
	hour, err := strconv.Atoi(hs)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func (h *Handlers) listCollections(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListCollections(r.Context(), h.airport(r))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load collections")
		return
	}
	writeCachedJSON(w, r, out)
}

func (h *Handlers) getCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	airport := h.airport(r)
	terminal := strings.ToUpper(r.URL.Query().Get("terminal"))
	hour, ok := hourParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid hour", "hour must be an integer between 0 and 23")
		return
	}

	view, err := h.Q.GetCollectionView(r.Context(), id, airport, terminal, hour)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCollection) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown collection id")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to resolve collection")
		return
	}
	writeCachedJSON(w, r, view)
}

func (h *Handlers) getAmenity(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	terminal := strings.ToUpper(r.URL.Query().Get("terminal"))
	if terminal == "" {
		writeProblem(w, http.StatusBadRequest, "Missing terminal", "terminal query parameter is required")
		return
	}

	a, err := h.Q.GetAmenity(r.Context(), slug, terminal)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "amenity not found")
		return
	}
	writeCachedJSON(w, r, a)
}

func (h *Handlers) scoreVibe(w http.ResponseWriter, r *http.Request) {
	vibe := chi.URLParam(r, "vibe")
	hour, ok := hourParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid hour", "hour must be an integer between 0 and 23")
		return
	}

	q := r.URL.Query()
	vctx := domain.VibeContext{
		TimeOfDay:   hour,
		JourneyType: strings.ToLower(q.Get("journey")),
		StressLevel: strings.ToLower(q.Get("stress")),
		Preferences: domain.VibePreferences{
			Favorites: splitCSVParam(q.Get("favorites")),
			Excluded:  splitCSVParam(q.Get("excluded")),
		},
	}

	// Scoring is pure and never fails; no ETag needed for an ephemeral result.
	out := h.Q.ScoreVibe(vibe, vctx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write scoreVibe body")
	}
}

func splitCSVParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

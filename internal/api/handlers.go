package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/kittclouds/moodreel/internal/emotion"
	"github.com/kittclouds/moodreel/internal/logging"
	"github.com/kittclouds/moodreel/internal/metrics"
	"github.com/kittclouds/moodreel/internal/store"
	"github.com/kittclouds/moodreel/pkg/catalog"
	"github.com/kittclouds/moodreel/pkg/recommend"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RecommendationResponse is the body of recommendation endpoints.
type RecommendationResponse struct {
	Emotion   string           `json:"emotion"`
	Tier      recommend.Tier   `json:"tier"`
	Movies    []RecommendedDTO `json:"movies"`
	HistoryID string           `json:"historyId,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// RecommendedDTO is one ranked movie.
type RecommendedDTO struct {
	Rank  int     `json:"rank"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
	catalog.Movie
}

// PolarityRequest asks for recommendations from a text sentiment score.
type PolarityRequest struct {
	Polarity *float64 `json:"polarity" validate:"required,gte=-1,lte=1"`
	TopN     int      `json:"topN" validate:"gte=0"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness and whether the index is built.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  s.loader.Ready(),
	})
}

// Recommend handles GET /recommendations/{emotion}?topN=.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	topN, ok := s.parseTopN(w, r.URL.Query().Get("topN"))
	if !ok {
		return
	}
	s.respondRecommendation(w, emotion.Normalize(chi.URLParam(r, "emotion")), topN, "api")
}

// RecommendFromPolarity handles POST /recommendations/text.
func (s *Server) RecommendFromPolarity(w http.ResponseWriter, r *http.Request) {
	var req PolarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondRecommendation(w, emotion.FromPolarity(*req.Polarity), s.clampTopN(req.TopN), "text")
}

func (s *Server) respondRecommendation(w http.ResponseWriter, label string, topN int, source string) {
	idx, err := s.loader.Get()
	if err != nil {
		metrics.CatalogLoadErrors.Inc()
		logging.Error().Err(err).Msg("catalog unavailable")
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	start := time.Now()
	res := idx.Recommend(label, topN)
	metrics.RecordRecommendation(res.Emotion, res.Tier.String(), time.Since(start))

	if res.Tier != recommend.TierPrimary {
		logging.Debug().Str("emotion", res.Emotion).Stringer("tier", res.Tier).Msg("genre fallback used")
	}

	resp := RecommendationResponse{
		Emotion: res.Emotion,
		Tier:    res.Tier,
		Movies:  make([]RecommendedDTO, len(res.Items)),
	}
	for i, it := range res.Items {
		resp.Movies[i] = RecommendedDTO{Rank: i + 1, Index: it.Index, Score: it.Score, Movie: it.Movie}
	}
	if res.Empty() {
		resp.Message = "no recommendations"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if s.history != nil {
		entry := historyEntry(res, source)
		if err := s.history.AppendHistory(entry); err != nil {
			logging.Warn().Err(err).Msg("failed to record history")
		} else {
			resp.HistoryID = entry.ID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Similar handles GET /movies/{index}/similar?k=.
func (s *Server) Similar(w http.ResponseWriter, r *http.Request) {
	if s.similar == nil {
		writeError(w, http.StatusNotFound, "similar movies disabled")
		return
	}
	idx, err := s.loader.Get()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	pos, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || pos < 0 || pos >= idx.Corpus().Len() {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	k := s.opts.Neighbours
	if v := r.URL.Query().Get("k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= s.opts.MaxTopN {
			k = n
		}
	}

	ids, err := s.similar.Similar(uint32(pos), idx.Matrix().Row(pos), k)
	if err != nil {
		logging.Error().Err(err).Int("index", pos).Msg("similar search failed")
		writeError(w, http.StatusInternalServerError, "similar search failed")
		return
	}

	movies := make([]RecommendedDTO, 0, len(ids))
	for i, id := range ids {
		movies = append(movies, RecommendedDTO{Rank: i + 1, Index: int(id), Movie: idx.Corpus().Movie(int(id))})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"movie":   idx.Corpus().Movie(pos),
		"similar": movies,
	})
}

// ListHistory handles GET /history?limit=.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []*store.HistoryEntry{})
		return
	}
	limit := s.opts.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := s.history.ListHistory(limit)
	if err != nil {
		logging.Error().Err(err).Msg("failed to list history")
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ClearHistory handles DELETE /history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.history != nil {
		if err := s.history.ClearHistory(); err != nil {
			logging.Error().Err(err).Msg("failed to clear history")
			writeError(w, http.StatusInternalServerError, "failed to clear history")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) parseTopN(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return s.opts.DefaultTopN, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid topN")
		return 0, false
	}
	return s.clampTopN(n), true
}

func (s *Server) clampTopN(n int) int {
	switch {
	case n <= 0:
		return s.opts.DefaultTopN
	case n > s.opts.MaxTopN:
		return s.opts.MaxTopN
	default:
		return n
	}
}

func historyEntry(res recommend.Result, source string) *store.HistoryEntry {
	refs := make([]store.MovieRef, len(res.Items))
	for i, it := range res.Items {
		refs[i] = store.MovieRef{Index: it.Index, Title: it.Movie.Title, Score: it.Score}
	}
	return &store.HistoryEntry{
		Emotion: res.Emotion,
		Source:  source,
		Tier:    res.Tier.String(),
		Movies:  refs,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// Package api serves recommendations over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kittclouds/moodreel/internal/logging"
	"github.com/kittclouds/moodreel/internal/store"
	"github.com/kittclouds/moodreel/pkg/recommend"
)

// SimilarIndex finds movies with descriptions close to a given one.
type SimilarIndex interface {
	Similar(id uint32, vec []float32, k int) ([]uint32, error)
}

// Options configures a Server.
type Options struct {
	DefaultTopN  int
	MaxTopN      int
	HistoryLimit int
	Neighbours   int
	CORSOrigins  []string
}

// Server holds the handler dependencies.
type Server struct {
	loader  *recommend.Loader
	history store.Storer
	similar SimilarIndex
	opts    Options
}

// NewServer wires the handlers. similar may be nil to disable the
// similar-movies endpoint.
func NewServer(loader *recommend.Loader, history store.Storer, similar SimilarIndex, opts Options) *Server {
	if opts.DefaultTopN <= 0 {
		opts.DefaultTopN = recommend.DefaultTopN
	}
	if opts.MaxTopN < opts.DefaultTopN {
		opts.MaxTopN = opts.DefaultTopN
	}
	if opts.Neighbours <= 0 {
		opts.Neighbours = 5
	}
	return &Server{loader: loader, history: history, similar: similar, opts: opts}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.Health)

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/text", s.RecommendFromPolarity)
			r.Get("/{emotion}", s.Recommend)
		})

		r.Get("/movies/{index}/similar", s.Similar)

		r.Get("/history", s.ListHistory)
		r.Delete("/history", s.ClearHistory)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

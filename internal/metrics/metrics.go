// Package metrics exposes Prometheus collectors for the recommender.
//
//	moodreel_recommendations_total{emotion,tier}  counter
//	moodreel_recommend_duration_seconds{tier}     histogram
//	moodreel_corpus_movies                        gauge
//	moodreel_corpus_vocabulary_terms              gauge
//	moodreel_catalog_load_errors_total            counter
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_recommendations_total",
			Help: "Recommendation requests by emotion and the fallback tier that resolved them",
		},
		[]string{"emotion", "tier"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodreel_recommend_duration_seconds",
			Help:    "Time spent ranking a recommendation",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"tier"},
	)

	CorpusMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodreel_corpus_movies",
			Help: "Movies in the loaded catalog",
		},
	)

	VocabularyTerms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodreel_corpus_vocabulary_terms",
			Help: "Distinct terms in the TF-IDF vocabulary",
		},
	)

	CatalogLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodreel_catalog_load_errors_total",
			Help: "Failed catalog loads",
		},
	)
)

// knownEmotions bounds the emotion label cardinality.
var knownEmotions = map[string]bool{
	"happy": true, "sad": true, "angry": true,
	"surprise": true, "fear": true, "neutral": true,
}

// RecordRecommendation counts one request. Unknown labels share the "other"
// series.
func RecordRecommendation(emotion, tier string, elapsed time.Duration) {
	if !knownEmotions[emotion] {
		emotion = "other"
	}
	Recommendations.WithLabelValues(emotion, tier).Inc()
	RecommendDuration.WithLabelValues(tier).Observe(elapsed.Seconds())
}

// RecordCorpus publishes index dimensions after a build.
func RecordCorpus(movies, terms int) {
	CorpusMovies.Set(float64(movies))
	VocabularyTerms.Set(float64(terms))
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(Recommendations.WithLabelValues("happy", "primary"))
	RecordRecommendation("happy", "primary", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(Recommendations.WithLabelValues("happy", "primary")))

	other := testutil.ToFloat64(Recommendations.WithLabelValues("other", "neutral"))
	RecordRecommendation("bored", "neutral", time.Millisecond)
	assert.Equal(t, other+1, testutil.ToFloat64(Recommendations.WithLabelValues("other", "neutral")))
}

func TestRecordCorpus(t *testing.T) {
	RecordCorpus(12, 340)
	assert.Equal(t, 12.0, testutil.ToFloat64(CorpusMovies))
	assert.Equal(t, 340.0, testutil.ToFloat64(VocabularyTerms))
}

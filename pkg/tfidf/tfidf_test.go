package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_DropsStopWordsAndShortTokens(t *testing.T) {
	tok := NewTokenizer()
	got := tok.Tokenize("The Hilarious PRANK of a summer, x y 42!")
	assert.Equal(t, []string{"hilarious", "prank", "summer", "42"}, got)
	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("the and of"))
}

func TestTokenize_CustomStopWord(t *testing.T) {
	tok := NewTokenizer()
	tok.AddStopWord("Prank")
	assert.Equal(t, []string{"hilarious"}, tok.Tokenize("hilarious prank"))
}

func TestBuild_VocabularyAndIDF(t *testing.T) {
	m := Build([]string{"a hilarious prank", "a terrifying night", "a night prank"})

	assert.Equal(t, []string{"hilarious", "night", "prank", "terrifying"}, m.Vocabulary())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 4, m.Dim())

	// df=1 over n=3: ln(4/2)+1; df=2: ln(4/3)+1
	assert.InDelta(t, math.Log(2)+1, m.IDF("hilarious"), 1e-9)
	assert.InDelta(t, math.Log(4.0/3.0)+1, m.IDF("night"), 1e-9)
	assert.Zero(t, m.IDF("unknown"))
}

func TestBuild_RowsAreUnitLength(t *testing.T) {
	m := Build([]string{"space ship crew", "ship ship harbor", ""})
	for i := 0; i < 2; i++ {
		var sum float64
		for _, x := range m.Row(i) {
			sum += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "row %d", i)
	}
	assert.True(t, IsZero(m.Row(2)), "empty description yields zero row")
}

func TestBuild_StopWordOnlyDescription(t *testing.T) {
	m := Build([]string{"the of and", "robots attack"})
	assert.True(t, IsZero(m.Row(0)))
	assert.False(t, IsZero(m.Row(1)))
}

func TestBuild_EmptyCorpus(t *testing.T) {
	m := Build(nil)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Dim())
	assert.Empty(t, m.CentroidAll())
}

func TestTransform(t *testing.T) {
	m := Build([]string{"a hilarious prank", "a terrifying night"})
	v := m.Transform("prank night unknownword")
	require.Len(t, v, m.Dim())
	assert.Greater(t, v[1], float32(0))
	assert.Greater(t, v[2], float32(0))
	assert.Zero(t, v[0])
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1.0, 0.0, 0.0}
	b := []float32{1.0, 0.0, 0.0}
	c := []float32{0.0, 1.0, 0.0}
	d := []float32{0.707, 0.707, 0.0}
	zero := []float32{0, 0, 0}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity(a, c), 1e-6)
	assert.InDelta(t, 0.707, CosineSimilarity(a, d), 1e-3)
	assert.Zero(t, CosineSimilarity(a, zero))
	assert.Zero(t, CosineSimilarity(zero, zero))
	assert.Zero(t, CosineSimilarity(a, []float32{1, 0}))
}

func TestCentroid(t *testing.T) {
	got := Centroid([][]float32{{1, 0}, {0, 1}, {2, 2}}, 2)
	assert.InDeltaSlice(t, []float64{1, 1}, []float64{float64(got[0]), float64(got[1])}, 1e-6)
	assert.Equal(t, []float32{0, 0}, Centroid(nil, 2))
}

func TestMatrixCentroid(t *testing.T) {
	m := Build([]string{"alpha", "beta"})
	got := m.Centroid([]int{0})
	assert.Equal(t, m.Row(0), got)
	all := m.CentroidAll()
	assert.InDelta(t, 0.5, all[0], 1e-6)
	assert.InDelta(t, 0.5, all[1], 1e-6)
}

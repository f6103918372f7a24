package tfidf

import (
	"math"
	"sort"
)

// Matrix holds one L2-normalized TF-IDF row per document. Columns follow the
// lexically sorted vocabulary. A Matrix is read-only once Build returns.
type Matrix struct {
	vocab []string
	terms map[string]int
	idf   []float64
	rows  [][]float32
	tok   *Tokenizer
}

// Build fits the vocabulary and IDF weights over docs and vectorizes each of
// them. Documents with no surviving terms get an all-zero row.
func Build(docs []string) *Matrix {
	return build(NewTokenizer(), docs)
}

func build(tok *Tokenizer, docs []string) *Matrix {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := tok.Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)

	m := &Matrix{
		vocab: vocab,
		terms: make(map[string]int, len(vocab)),
		idf:   make([]float64, len(vocab)),
		rows:  make([][]float32, len(docs)),
		tok:   tok,
	}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1
	n := float64(len(docs))
	for j, t := range vocab {
		m.terms[t] = j
		m.idf[j] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	for i, tokens := range tokenized {
		m.rows[i] = m.weigh(tokens)
	}
	return m
}

// weigh turns a token list into a normalized TF-IDF row, ignoring
// out-of-vocabulary terms.
func (m *Matrix) weigh(tokens []string) []float32 {
	row := make([]float32, len(m.vocab))
	counts := make(map[int]int, len(tokens))
	for _, t := range tokens {
		if j, ok := m.terms[t]; ok {
			counts[j]++
		}
	}
	for j, c := range counts {
		row[j] = float32(float64(c) * m.idf[j])
	}
	Normalize(row)
	return row
}

// Transform vectorizes text against the fitted vocabulary.
func (m *Matrix) Transform(text string) []float32 {
	return m.weigh(m.tok.Tokenize(text))
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

// Dim returns the vocabulary size.
func (m *Matrix) Dim() int { return len(m.vocab) }

// Row returns row i. Callers must not modify it.
func (m *Matrix) Row(i int) []float32 { return m.rows[i] }

// Vocabulary returns a copy of the sorted vocabulary.
func (m *Matrix) Vocabulary() []string {
	return append([]string(nil), m.vocab...)
}

// IDF returns the inverse document frequency of term, or 0 if unknown.
func (m *Matrix) IDF(term string) float64 {
	if j, ok := m.terms[term]; ok {
		return m.idf[j]
	}
	return 0
}

// Centroid averages the rows at indices.
func (m *Matrix) Centroid(indices []int) []float32 {
	rows := make([][]float32, len(indices))
	for k, i := range indices {
		rows[k] = m.rows[i]
	}
	return Centroid(rows, m.Dim())
}

// CentroidAll averages every row.
func (m *Matrix) CentroidAll() []float32 {
	return Centroid(m.rows, m.Dim())
}

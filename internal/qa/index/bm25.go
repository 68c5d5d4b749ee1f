// Package index implements the BM25 lexical ranking index over the message
// corpus. The index is built once per corpus snapshot and is read-only with
// respect to queries.
package index

import (
	"math"
	"sort"
)

const (
	k1 = 1.2
	b  = 0.75
)

// BM25 holds the per-document term statistics needed to score queries.
// Document positions align with the corpus the index was built from.
type BM25 struct {
	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgLen    float64
	docCount  int
}

// Build constructs a BM25 index from one token list per document. An empty
// corpus yields a valid index whose scores are all zero.
func Build(docTokens [][]string) *BM25 {
	idx := &BM25{
		termFreqs: make([]map[string]int, len(docTokens)),
		docLens:   make([]int, len(docTokens)),
		docFreq:   make(map[string]int),
		docCount:  len(docTokens),
	}

	totalLen := 0
	for i, tokens := range docTokens {
		freq := make(map[string]int, len(tokens))
		for _, term := range tokens {
			freq[term]++
		}
		idx.termFreqs[i] = freq
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)
		for term := range freq {
			idx.docFreq[term]++
		}
	}
	if idx.docCount > 0 {
		idx.avgLen = float64(totalLen) / float64(idx.docCount)
	}
	return idx
}

// DocCount returns the number of documents the index was built over.
func (idx *BM25) DocCount() int {
	return idx.docCount
}

// Scores ranks every document against the query tokens and returns one
// score per document, aligned to corpus order.
func (idx *BM25) Scores(query []string) []float64 {
	scores := make([]float64, idx.docCount)
	if idx.docCount == 0 {
		return scores
	}
	for _, term := range query {
		df, ok := idx.docFreq[term]
		if !ok {
			continue
		}
		idf := computeIDF(int64(idx.docCount), int64(df))
		for i, freqs := range idx.termFreqs {
			tf := freqs[term]
			if tf == 0 {
				continue
			}
			scores[i] += idf * computeTFNorm(float64(tf), float64(idx.docLens[i]), idx.avgLen)
		}
	}
	return scores
}

// TopK returns the positions of the k highest-scoring documents, scores
// descending. Equal scores are broken by lower document position so results
// are deterministic.
func TopK(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})
	if k > 0 && len(order) > k {
		order = order[:k]
	}
	return order
}

func computeIDF(totalDocs, docFreq int64) float64 {
	numerator := float64(totalDocs) - float64(docFreq)
	denominator := float64(docFreq) + 0.5
	return math.Log(numerator/denominator + 1)
}

func computeTFNorm(termFreq, docLength, avgDocLength float64) float64 {
	if avgDocLength == 0 {
		return 0
	}
	lengthRatio := docLength / avgDocLength
	denominator := termFreq + k1*(1-b+b*lengthRatio)
	return (termFreq * (k1 + 1)) / denominator
}

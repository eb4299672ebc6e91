package retrieval

import (
	"context"
	"math"
	"sort"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ErrDimensionMismatch is returned when two vectors of different lengths are
// compared directly. During ranking a mismatched candidate is skipped instead.
var ErrDimensionMismatch = goerr.New("vector dimension mismatch")

// SimilarityResult pairs a candidate record with its similarity to the query
type SimilarityResult struct {
	Record model.EmbeddedRecord
	Score  float64
}

// CosineSimilarity computes the cosine similarity of two vectors.
// Accumulation happens in float64 regardless of the storage precision.
// Two empty vectors or any zero-magnitude vector yield 0.0, never NaN.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, goerr.Wrap(ErrDimensionMismatch, "cannot compare vectors",
			goerr.V("lenA", len(a)),
			goerr.V("lenB", len(b)),
		)
	}
	if len(a) == 0 {
		return 0, nil
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0, nil
	}

	return dot / denom, nil
}

// TopKSimilar ranks candidates against the query vector and returns at most k
// results with similarity >= minSimilarity, ordered by descending score.
// Equal scores keep their input order. Candidates without a stored vector are
// skipped silently; candidates with a mismatched dimensionality are skipped
// with a warning. k <= 0 returns an empty slice.
func TopKSimilar(ctx context.Context, query []float32, candidates []model.EmbeddedRecord, k int, minSimilarity float64) []SimilarityResult {
	if k <= 0 || len(query) == 0 {
		return []SimilarityResult{}
	}

	logger := logging.From(ctx)

	results := make([]SimilarityResult, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) == 0 {
			continue
		}

		score, err := CosineSimilarity(query, c.Embedding)
		if err != nil {
			logger.Warn("skipping candidate with mismatched embedding dimension",
				"recordID", c.ID,
				"queryDim", len(query),
				"candidateDim", len(c.Embedding),
			)
			continue
		}

		if score >= minSimilarity {
			results = append(results, SimilarityResult{Record: c, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}

	return results
}

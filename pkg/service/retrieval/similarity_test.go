package retrieval_test

import (
	"context"
	"math"
	"testing"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/service/retrieval"
	"github.com/m-mizutani/gt"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		score, err := retrieval.CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})
		gt.NoError(t, err).Required()
		gt.Bool(t, math.Abs(score-1.0) < 1e-9).True()
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		score, err := retrieval.CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		gt.NoError(t, err).Required()
		gt.Number(t, score).Equal(0)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		score, err := retrieval.CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
		gt.NoError(t, err).Required()
		gt.Bool(t, math.Abs(score-(-1.0)) < 1e-9).True()
	})

	t.Run("zero magnitude yields zero not NaN", func(t *testing.T) {
		score, err := retrieval.CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
		gt.NoError(t, err).Required()
		gt.Number(t, score).Equal(0)
		gt.Bool(t, math.IsNaN(score)).False()
	})

	t.Run("both empty yields zero", func(t *testing.T) {
		score, err := retrieval.CosineSimilarity([]float32{}, []float32{})
		gt.NoError(t, err).Required()
		gt.Number(t, score).Equal(0)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := retrieval.CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
		gt.Error(t, err).Is(retrieval.ErrDimensionMismatch)
	})

	t.Run("symmetric in its arguments", func(t *testing.T) {
		a := []float32{0.3, -1.2, 2.5}
		b := []float32{1.1, 0.4, -0.7}

		ab, err := retrieval.CosineSimilarity(a, b)
		gt.NoError(t, err).Required()
		ba, err := retrieval.CosineSimilarity(b, a)
		gt.NoError(t, err).Required()
		gt.Number(t, ab).Equal(ba)

		_, err = retrieval.CosineSimilarity(a, []float32{1, 2})
		gt.Error(t, err).Is(retrieval.ErrDimensionMismatch)
		_, err = retrieval.CosineSimilarity([]float32{1, 2}, a)
		gt.Error(t, err).Is(retrieval.ErrDimensionMismatch)
	})
}

func record(id string, vec []float32) model.EmbeddedRecord {
	return model.EmbeddedRecord{
		ID:        id,
		Text:      "text-" + id,
		Role:      types.RoleUser,
		Embedding: vec,
	}
}

func TestTopKSimilar(t *testing.T) {
	ctx := context.Background()
	query := []float32{1, 0}

	pool := []model.EmbeddedRecord{
		record("exact", []float32{1, 0}),
		record("orthogonal", []float32{0, 1}),
		record("close", []float32{0.9, 0.1}),
		record("opposite", []float32{-1, 0}),
		{ID: "no-vector", Text: "no vector", Role: types.RoleUser},
	}

	t.Run("ranks above threshold in descending order", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, pool, 2, 0.5)
		gt.Array(t, results).Length(2).Required()
		gt.Value(t, results[0].Record.ID).Equal("exact")
		gt.Value(t, results[1].Record.ID).Equal("close")
		gt.Bool(t, results[0].Score > results[1].Score).True()
	})

	t.Run("tight threshold keeps only exact match", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, pool, 5, 0.99)
		gt.Array(t, results).Length(1).Required()
		gt.Value(t, results[0].Record.ID).Equal("exact")
	})

	t.Run("k zero returns empty", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, pool, 0, 0)
		gt.Array(t, results).Length(0)
	})

	t.Run("negative k returns empty", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, pool, -3, 0)
		gt.Array(t, results).Length(0)
	})

	t.Run("skips mismatched dimensions", func(t *testing.T) {
		mixed := []model.EmbeddedRecord{
			record("good", []float32{1, 0}),
			record("bad-dim", []float32{1, 0, 0}),
		}
		results := retrieval.TopKSimilar(ctx, query, mixed, 5, 0)
		gt.Array(t, results).Length(1).Required()
		gt.Value(t, results[0].Record.ID).Equal("good")
	})

	t.Run("stable order for equal scores", func(t *testing.T) {
		tied := []model.EmbeddedRecord{
			record("first", []float32{2, 0}),
			record("second", []float32{3, 0}),
		}
		results := retrieval.TopKSimilar(ctx, query, tied, 5, 0)
		gt.Array(t, results).Length(2).Required()
		gt.Value(t, results[0].Record.ID).Equal("first")
		gt.Value(t, results[1].Record.ID).Equal("second")
	})

	t.Run("truncates to k", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, pool, 1, 0.5)
		gt.Array(t, results).Length(1).Required()
		gt.Value(t, results[0].Record.ID).Equal("exact")
	})

	t.Run("empty candidate pool", func(t *testing.T) {
		results := retrieval.TopKSimilar(ctx, query, nil, 3, 0)
		gt.Array(t, results).Length(0)
	})
}

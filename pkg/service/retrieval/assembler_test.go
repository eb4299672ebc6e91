package retrieval_test

import (
	"context"
	"strings"
	"testing"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/service/retrieval"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

type stubSource struct {
	records     []model.EmbeddedRecord
	err         error
	filteredErr error // returned only when tag is non-empty
	calls       int
	lastTag     string
}

func (s *stubSource) RecentRecords(ctx context.Context, userID, tag string, limit int) ([]model.EmbeddedRecord, error) {
	s.calls++
	s.lastTag = tag
	if s.err != nil {
		return nil, s.err
	}
	if tag != "" && s.filteredErr != nil {
		return nil, s.filteredErr
	}
	return s.records, nil
}

func taggedRecord(id, text, tag string, vec []float32) model.EmbeddedRecord {
	return model.EmbeddedRecord{
		ID:        id,
		Text:      text,
		Role:      types.RoleUser,
		Tag:       tag,
		Embedding: vec,
	}
}

func TestBuildContext(t *testing.T) {
	ctx := context.Background()

	t.Run("augments message with ranked context", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{records: []model.EmbeddedRecord{
			taggedRecord("a", "I felt anxious at work", "", []float32{1, 0}),
			taggedRecord("b", "the weather was nice", "", []float32{0, 1}),
			taggedRecord("c", "work has been stressful", "", []float32{0.9, 0.1}),
			taggedRecord("d", "unrelated", "", []float32{-1, 0}),
			{ID: "e", Text: "no vector", Role: types.RoleAssistant},
		}}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			UserID:        "user-1",
			Text:          "work is hard lately",
			TopK:          2,
			MinSimilarity: 0.5,
		})

		gt.Bool(t, result.EmbeddingOK).True()
		gt.Bool(t, result.HasContext()).True()
		gt.Number(t, result.CandidateCount).Equal(5)
		gt.Number(t, result.MatchCount).Equal(2)

		lines := strings.Split(result.ContextBlock, "\n")
		gt.Array(t, lines).Length(2).Required()
		gt.Value(t, lines[0]).Equal("user: I felt anxious at work")
		gt.Value(t, lines[1]).Equal("user: work has been stressful")

		gt.String(t, result.Message).Contains("work is hard lately")
		gt.Bool(t, strings.HasSuffix(result.Message, "work is hard lately")).True()
		gt.Number(t, embedder.calls).Equal(1)
		gt.Number(t, source.calls).Equal(1)
	})

	t.Run("empty query makes zero calls", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{Text: "   "})

		gt.Value(t, result.Message).Equal("   ")
		gt.Bool(t, result.HasContext()).False()
		gt.Number(t, embedder.calls).Equal(0)
		gt.Number(t, source.calls).Equal(0)
	})

	t.Run("precomputed vector skips embedding", func(t *testing.T) {
		embedder := &stubEmbedder{err: goerr.New("must not be called")}
		source := &stubSource{records: []model.EmbeddedRecord{
			taggedRecord("a", "I felt anxious at work", "", []float32{1, 0}),
		}}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text:          "work is hard lately",
			TopK:          3,
			MinSimilarity: 0.5,
			Vector:        []float32{1, 0},
		})

		gt.Number(t, embedder.calls).Equal(0)
		gt.Bool(t, result.EmbeddingOK).True()
		gt.Number(t, result.MatchCount).Equal(1)
		gt.String(t, result.ContextBlock).Contains("I felt anxious at work")
	})

	t.Run("embedding failure degrades to bare message", func(t *testing.T) {
		embedder := &stubEmbedder{err: goerr.New("provider down")}
		source := &stubSource{records: []model.EmbeddedRecord{
			taggedRecord("a", "past message", "", []float32{1, 0}),
		}}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text: "hello", TopK: 3, MinSimilarity: 0.5,
		})

		gt.Value(t, result.Message).Equal("hello")
		gt.Bool(t, result.EmbeddingOK).False()
		gt.Bool(t, result.HasContext()).False()
	})

	t.Run("record fetch failure degrades to bare message", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{err: goerr.New("store unavailable")}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text: "hello", TopK: 3, MinSimilarity: 0.5,
		})

		gt.Value(t, result.Message).Equal("hello")
		gt.Bool(t, result.EmbeddingOK).True()
		gt.Number(t, result.CandidateCount).Equal(0)
		gt.Bool(t, result.HasContext()).False()
	})

	t.Run("no match above threshold keeps bare message", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{records: []model.EmbeddedRecord{
			taggedRecord("a", "something else", "", []float32{0, 1}),
		}}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text: "hello", TopK: 3, MinSimilarity: 0.7,
		})

		gt.Value(t, result.Message).Equal("hello")
		gt.Number(t, result.CandidateCount).Equal(1)
		gt.Number(t, result.MatchCount).Equal(0)
	})

	t.Run("filtered fetch failure falls back to client-side filter", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{
			filteredErr: goerr.New("missing composite index"),
			records: []model.EmbeddedRecord{
				taggedRecord("a", "calm persona memory", "calm", []float32{1, 0}),
				taggedRecord("b", "logical persona memory", "logical", []float32{1, 0}),
			},
		}

		assembler := retrieval.NewAssembler(embedder)
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text: "hello", TopK: 5, MinSimilarity: 0.5, Tag: "calm",
		})

		gt.Number(t, source.calls).Equal(2)
		gt.Value(t, source.lastTag).Equal("")
		gt.Number(t, result.CandidateCount).Equal(1)
		gt.String(t, result.ContextBlock).Contains("calm persona memory")
		gt.Bool(t, strings.Contains(result.ContextBlock, "logical persona memory")).False()
	})

	t.Run("dedupe drops repeated text", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{1, 0}}
		source := &stubSource{records: []model.EmbeddedRecord{
			taggedRecord("a", "I feel tired", "", []float32{1, 0}),
			taggedRecord("b", "  i feel tired ", "", []float32{0.95, 0.05}),
			taggedRecord("c", "I feel great", "", []float32{0.9, 0.1}),
		}}

		assembler := retrieval.NewAssembler(embedder, retrieval.WithDedupe(true))
		result := assembler.BuildContext(ctx, source, model.RetrievalQuery{
			Text: "how am I doing", TopK: 5, MinSimilarity: 0.5,
		})

		gt.Number(t, result.MatchCount).Equal(2)
		lines := strings.Split(result.ContextBlock, "\n")
		gt.Array(t, lines).Length(2).Required()
		gt.Value(t, lines[0]).Equal("user: I feel tired")
		gt.Value(t, lines[1]).Equal("user: I feel great")
	})
}

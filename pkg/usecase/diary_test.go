package usecase_test

import (
	"context"
	"testing"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/repository/memory"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func newDiaryEntry(date, content string, mood types.Mood) *model.DiaryEntry {
	return &model.DiaryEntry{
		Date:    date,
		Title:   "one day",
		Mood:    mood,
		Content: content,
	}
}

func TestDiaryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds content on create", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{0.3, 0.4}}
		uc := usecase.New(memory.New(), usecase.WithEmbeddingClient(embedder))

		created, err := uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "slept well", types.MoodGood))
		gt.NoError(t, err).Required()
		gt.Array(t, created.Embedding).Length(2)
		gt.Number(t, embedder.calls).Equal(1)
	})

	t.Run("embedding failure stores entry anyway", func(t *testing.T) {
		uc := usecase.New(memory.New(),
			usecase.WithEmbeddingClient(&stubEmbedder{err: goerr.New("down")}),
		)

		created, err := uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "slept well", types.MoodGood))
		gt.NoError(t, err).Required()
		gt.Array(t, created.Embedding).Length(0)
	})

	t.Run("rejects invalid entry", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Diary.Create(ctx, "user-1", newDiaryEntry("08/30/2026", "slept well", types.MoodGood))
		gt.Error(t, err)

		_, err = uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "", types.MoodGood))
		gt.Error(t, err)

		_, err = uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "fine", "ecstatic"))
		gt.Error(t, err)
	})
}

func TestDiaryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("re-embeds only when content changes", func(t *testing.T) {
		embedder := &stubEmbedder{vec: []float32{0.1, 0.2}}
		uc := usecase.New(memory.New(), usecase.WithEmbeddingClient(embedder))

		created, err := uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "original", types.MoodNeutral))
		gt.NoError(t, err).Required()
		gt.Number(t, embedder.calls).Equal(1)

		// title-only edit keeps the stored vector
		created.Title = "renamed"
		updated, err := uc.Diary.Update(ctx, "user-1", created)
		gt.NoError(t, err).Required()
		gt.Number(t, embedder.calls).Equal(1)
		gt.Array(t, updated.Embedding).Length(2)

		updated.Content = "rewritten"
		_, err = uc.Diary.Update(ctx, "user-1", updated)
		gt.NoError(t, err).Required()
		gt.Number(t, embedder.calls).Equal(2)
	})

	t.Run("update of missing entry fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		entry := newDiaryEntry("2026-08-30", "content", types.MoodGood)
		entry.ID = model.NewDiaryID()
		_, err := uc.Diary.Update(ctx, "user-1", entry)
		gt.Error(t, err)
	})
}

func TestDiaryRelated(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithEmbeddingClient(&stubEmbedder{vec: []float32{1, 0}}))

	seed := func(content string, vec []float32) *model.DiaryEntry {
		entry := newDiaryEntry("2026-08-30", content, types.MoodNeutral)
		entry.Embedding = vec
		created, err := repo.Diary().Create(ctx, "user-1", entry)
		gt.NoError(t, err).Required()
		return created
	}

	anchor := seed("work stress", []float32{1, 0})
	seed("more work stress", []float32{0.9, 0.1})
	seed("a walk in the park", []float32{0, 1})

	related, err := uc.Diary.Related(ctx, "user-1", anchor.ID, 2)
	gt.NoError(t, err).Required()
	gt.Array(t, related).Length(2).Required()
	gt.Value(t, related[0].Content).Equal("more work stress")
	for _, r := range related {
		gt.Value(t, r.ID).NotEqual(anchor.ID)
	}

	t.Run("entry without embedding has no related entries", func(t *testing.T) {
		bare := seed("no vector", nil)
		related, err := uc.Diary.Related(ctx, "user-1", bare.ID, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, related).Length(0)
	})
}

func TestDiaryDelete(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Diary.Create(ctx, "user-1", newDiaryEntry("2026-08-30", "to be removed", types.MoodBad))
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Diary.Delete(ctx, "user-1", created.ID))

	_, err = uc.Diary.Get(ctx, "user-1", created.ID)
	gt.Error(t, err)
}

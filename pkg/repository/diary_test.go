package repository_test

import (
	"context"
	"testing"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runDiaryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newEntry := func(date, content string, vec []float32) *model.DiaryEntry {
		return &model.DiaryEntry{
			Date:      date,
			Title:     "entry",
			Mood:      types.MoodNeutral,
			Content:   content,
			Embedding: vec,
		}
	}

	t.Run("Create and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Diary().Create(ctx, "user-1", newEntry("2026-08-30", "slept well", []float32{0.1, 0.2}))
		gt.NoError(t, err).Required()
		gt.Value(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		retrieved, err := repo.Diary().Get(ctx, "user-1", created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Content).Equal("slept well")
		gt.Value(t, retrieved.Mood).Equal(types.MoodNeutral)
		gt.Array(t, retrieved.Embedding).Length(2)
	})

	t.Run("Get missing entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Diary().Get(ctx, "user-1", model.NewDiaryID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Update preserves CreatedAt and bumps UpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Diary().Create(ctx, "user-1", newEntry("2026-08-30", "original", nil))
		gt.NoError(t, err).Required()

		created.Content = "edited"
		updated, err := repo.Diary().Update(ctx, "user-1", created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Content).Equal("edited")
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
		gt.Bool(t, updated.UpdatedAt.Before(updated.CreatedAt)).False()
	})

	t.Run("List returns entries newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, date := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
			_, err := repo.Diary().Create(ctx, "user-1", newEntry(date, "day "+date, nil))
			gt.NoError(t, err).Required()
		}

		entries, err := repo.Diary().List(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
	})

	t.Run("Delete removes entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Diary().Create(ctx, "user-1", newEntry("2026-08-30", "bye", nil))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Diary().Delete(ctx, "user-1", created.ID))

		_, err = repo.Diary().Get(ctx, "user-1", created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("FindByEmbedding orders by similarity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Diary().Create(ctx, "user-1", newEntry("2026-08-28", "exact", []float32{1, 0}))
		gt.NoError(t, err).Required()
		_, err = repo.Diary().Create(ctx, "user-1", newEntry("2026-08-29", "close", []float32{0.9, 0.1}))
		gt.NoError(t, err).Required()
		_, err = repo.Diary().Create(ctx, "user-1", newEntry("2026-08-30", "orthogonal", []float32{0, 1}))
		gt.NoError(t, err).Required()

		results, err := repo.Diary().FindByEmbedding(ctx, "user-1", []float32{1, 0}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(2).Required()
		gt.Value(t, results[0].Content).Equal("exact")
		gt.Value(t, results[1].Content).Equal("close")
	})
}

func TestMemoryDiaryRepository(t *testing.T) {
	runDiaryRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreDiaryRepository(t *testing.T) {
	runDiaryRepositoryTest(t, newFirestoreRepository)
}

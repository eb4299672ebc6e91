package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runMessageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		msg := &model.Message{
			Persona:   "calm",
			Role:      types.RoleUser,
			Text:      "hello there",
			Embedding: []float32{0.1, 0.2, 0.3},
		}

		created, err := repo.Message().Create(ctx, "user-1", msg)
		gt.NoError(t, err).Required()
		gt.Value(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.UserID).Equal("user-1")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Array(t, created.Embedding).Length(3)
	})

	t.Run("ListRecent returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		for i, text := range []string{"first", "second", "third"} {
			_, err := repo.Message().Create(ctx, "user-1", &model.Message{
				Persona:   "calm",
				Role:      types.RoleUser,
				Text:      text,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}

		msgs, err := repo.Message().ListRecent(ctx, "user-1", "", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(3).Required()
		gt.Value(t, msgs[0].Text).Equal("third")
		gt.Value(t, msgs[2].Text).Equal("first")
	})

	t.Run("ListRecent respects limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			_, err := repo.Message().Create(ctx, "user-1", &model.Message{
				Persona:   "calm",
				Role:      types.RoleUser,
				Text:      "msg",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}

		msgs, err := repo.Message().ListRecent(ctx, "user-1", "", 2)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(2)
	})

	t.Run("ListRecent filters by persona", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Message().Create(ctx, "user-1", &model.Message{
			Persona: "calm", Role: types.RoleUser, Text: "to calm",
		})
		gt.NoError(t, err).Required()
		_, err = repo.Message().Create(ctx, "user-1", &model.Message{
			Persona: "logical", Role: types.RoleUser, Text: "to logical",
		})
		gt.NoError(t, err).Required()

		msgs, err := repo.Message().ListRecent(ctx, "user-1", "calm", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(1).Required()
		gt.Value(t, msgs[0].Text).Equal("to calm")
	})

	t.Run("messages are isolated per user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Message().Create(ctx, "user-1", &model.Message{
			Persona: "calm", Role: types.RoleUser, Text: "mine",
		})
		gt.NoError(t, err).Required()

		msgs, err := repo.Message().ListRecent(ctx, "user-2", "", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(0)
	})

	t.Run("Delete removes message", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Message().Create(ctx, "user-1", &model.Message{
			Persona: "calm", Role: types.RoleUser, Text: "to delete",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Message().Delete(ctx, "user-1", created.ID))

		msgs, err := repo.Message().ListRecent(ctx, "user-1", "", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(0)

		err = repo.Message().Delete(ctx, "user-1", created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestMemoryMessageRepository(t *testing.T) {
	runMessageRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreMessageRepository(t *testing.T) {
	runMessageRepositoryTest(t, newFirestoreRepository)
}

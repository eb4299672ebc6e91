package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client  *firestore.Client
	message *messageRepository
	diary   *diaryRepository
	tarot   *tarotRepository
}

var _ interfaces.Repository = &Firestore{}

// New creates a Firestore-backed repository. An empty databaseID selects the
// default database of the project.
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Firestore{
		client:  client,
		message: newMessageRepository(client),
		diary:   newDiaryRepository(client),
		tarot:   newTarotRepository(client),
	}, nil
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.message
}

func (f *Firestore) Diary() interfaces.DiaryRepository {
	return f.diary
}

func (f *Firestore) Tarot() interfaces.TarotRepository {
	return f.tarot
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

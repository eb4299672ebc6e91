package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// diaryDoc is the Firestore document representation of model.DiaryEntry.
// Embedding is stored as firestore.Vector32 for FindNearest vector search.
type diaryDoc struct {
	ID        model.DiaryID      `firestore:"ID"`
	Date      string             `firestore:"Date"`
	Title     string             `firestore:"Title"`
	Mood      string             `firestore:"Mood"`
	Content   string             `firestore:"Content"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
	UpdatedAt time.Time          `firestore:"UpdatedAt"`
}

func toDiaryDoc(e *model.DiaryEntry) *diaryDoc {
	doc := &diaryDoc{
		ID:        e.ID,
		Date:      e.Date,
		Title:     e.Title,
		Mood:      e.Mood.String(),
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if len(e.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(e.Embedding)
	}
	return doc
}

func fromDiaryDoc(userID string, d *diaryDoc) *model.DiaryEntry {
	e := &model.DiaryEntry{
		ID:        d.ID,
		UserID:    userID,
		Date:      d.Date,
		Title:     d.Title,
		Mood:      types.Mood(d.Mood),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if len(d.Embedding) > 0 {
		e.Embedding = []float32(d.Embedding)
	}
	return e
}

type diaryRepository struct {
	client *firestore.Client
}

func newDiaryRepository(client *firestore.Client) *diaryRepository {
	return &diaryRepository{client: client}
}

// diariesCollection returns the subcollection path: users/{userID}/diaries
func (r *diaryRepository) diariesCollection(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("diaries")
}

func (r *diaryRepository) Create(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = model.NewDiaryID()
	}
	entry.UserID = userID
	entry.CreatedAt = now
	entry.UpdatedAt = now

	docRef := r.diariesCollection(userID).Doc(string(entry.ID))
	if _, err := docRef.Set(ctx, toDiaryDoc(entry)); err != nil {
		return nil, goerr.Wrap(err, "failed to create diary entry")
	}

	return entry, nil
}

func (r *diaryRepository) Get(ctx context.Context, userID string, id model.DiaryID) (*model.DiaryEntry, error) {
	docRef := r.diariesCollection(userID).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
		}
		return nil, goerr.Wrap(err, "failed to get diary entry", goerr.V("diaryID", id))
	}

	var d diaryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal diary entry", goerr.V("diaryID", id))
	}

	return fromDiaryDoc(userID, &d), nil
}

func (r *diaryRepository) Update(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	docRef := r.diariesCollection(userID).Doc(string(entry.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", entry.ID))
		}
		return nil, goerr.Wrap(err, "failed to get diary entry", goerr.V("diaryID", entry.ID))
	}

	var existing diaryDoc
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal diary entry", goerr.V("diaryID", entry.ID))
	}

	entry.UserID = userID
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toDiaryDoc(entry)); err != nil {
		return nil, goerr.Wrap(err, "failed to update diary entry", goerr.V("diaryID", entry.ID))
	}

	return entry, nil
}

func (r *diaryRepository) Delete(ctx context.Context, userID string, id model.DiaryID) error {
	docRef := r.diariesCollection(userID).Doc(string(id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
		}
		return goerr.Wrap(err, "failed to get diary entry", goerr.V("diaryID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete diary entry", goerr.V("diaryID", id))
	}

	return nil
}

func (r *diaryRepository) List(ctx context.Context, userID string) ([]*model.DiaryEntry, error) {
	iter := r.diariesCollection(userID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.DiaryEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate diary entries")
		}

		var d diaryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal diary entry")
		}

		entries = append(entries, fromDiaryDoc(userID, &d))
	}

	return entries, nil
}

func (r *diaryRepository) FindByEmbedding(ctx context.Context, userID string, embedding []float32, limit int) ([]*model.DiaryEntry, error) {
	vq := r.diariesCollection(userID).
		FindNearest("Embedding", firestore.Vector32(embedding), limit, firestore.DistanceMeasureCosine, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.DiaryEntry, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate diary vector search results")
		}

		var d diaryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal diary entry from vector search")
		}

		entries = append(entries, fromDiaryDoc(userID, &d))
	}

	return entries, nil
}

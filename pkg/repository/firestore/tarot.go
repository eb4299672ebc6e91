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

// drawnCardDoc persists only the card ID and orientation; full card data is
// restored from the built-in deck on read.
type drawnCardDoc struct {
	CardID   int  `firestore:"CardID"`
	Reversed bool `firestore:"Reversed"`
}

type tarotDoc struct {
	ID             model.ReadingID `firestore:"ID"`
	Question       string          `firestore:"Question"`
	Cards          []drawnCardDoc  `firestore:"Cards"`
	Mode           string          `firestore:"Mode"`
	Topic          string          `firestore:"Topic"`
	Interpretation string          `firestore:"Interpretation,omitempty"`
	CreatedAt      time.Time       `firestore:"CreatedAt"`
}

func toTarotDoc(r *model.TarotReading) *tarotDoc {
	cards := make([]drawnCardDoc, len(r.Cards))
	for i, c := range r.Cards {
		cards[i] = drawnCardDoc{CardID: c.CardID, Reversed: c.Reversed}
	}
	return &tarotDoc{
		ID:             r.ID,
		Question:       r.Question,
		Cards:          cards,
		Mode:           r.Mode.String(),
		Topic:          r.Topic.String(),
		Interpretation: r.Interpretation,
		CreatedAt:      r.CreatedAt,
	}
}

func fromTarotDoc(userID string, d *tarotDoc) *model.TarotReading {
	cards := make([]model.DrawnCard, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = model.DrawnCard{CardID: c.CardID, Reversed: c.Reversed}
	}
	return &model.TarotReading{
		ID:             d.ID,
		UserID:         userID,
		Question:       d.Question,
		Cards:          cards,
		Mode:           types.TarotMode(d.Mode),
		Topic:          types.TarotTopic(d.Topic),
		Interpretation: d.Interpretation,
		CreatedAt:      d.CreatedAt,
	}
}

type tarotRepository struct {
	client *firestore.Client
}

func newTarotRepository(client *firestore.Client) *tarotRepository {
	return &tarotRepository{client: client}
}

// tarotCollection returns the subcollection path: users/{userID}/tarotReadings
func (r *tarotRepository) tarotCollection(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("tarotReadings")
}

func (r *tarotRepository) Create(ctx context.Context, userID string, reading *model.TarotReading) (*model.TarotReading, error) {
	if reading.ID == "" {
		reading.ID = model.NewReadingID()
	}
	reading.UserID = userID
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now().UTC()
	}

	docRef := r.tarotCollection(userID).Doc(string(reading.ID))
	if _, err := docRef.Set(ctx, toTarotDoc(reading)); err != nil {
		return nil, goerr.Wrap(err, "failed to create tarot reading")
	}

	return reading, nil
}

func (r *tarotRepository) List(ctx context.Context, userID string, limit int) ([]*model.TarotReading, error) {
	q := r.tarotCollection(userID).OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	readings := make([]*model.TarotReading, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tarot readings")
		}

		var d tarotDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal tarot reading")
		}

		readings = append(readings, fromTarotDoc(userID, &d))
	}

	return readings, nil
}

func (r *tarotRepository) Delete(ctx context.Context, userID string, id model.ReadingID) error {
	docRef := r.tarotCollection(userID).Doc(string(id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "tarot reading not found", goerr.V("readingID", id))
		}
		return goerr.Wrap(err, "failed to get tarot reading", goerr.V("readingID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete tarot reading", goerr.V("readingID", id))
	}

	return nil
}

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

// messageDoc is the Firestore document representation of model.Message.
// Embedding is stored as firestore.Vector32 so that vector indexes apply.
type messageDoc struct {
	ID        model.MessageID    `firestore:"ID"`
	Persona   string             `firestore:"Persona"`
	Role      string             `firestore:"Role"`
	Text      string             `firestore:"Text"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
}

func toMessageDoc(m *model.Message) *messageDoc {
	doc := &messageDoc{
		ID:        m.ID,
		Persona:   m.Persona.String(),
		Role:      m.Role.String(),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(m.Embedding)
	}
	return doc
}

func fromMessageDoc(userID string, d *messageDoc) *model.Message {
	m := &model.Message{
		ID:        d.ID,
		UserID:    userID,
		Persona:   types.PersonaID(d.Persona),
		Role:      types.MessageRole(d.Role),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		m.Embedding = []float32(d.Embedding)
	}
	return m
}

type messageRepository struct {
	client *firestore.Client
}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

// messagesCollection returns the subcollection path: users/{userID}/messages
func (r *messageRepository) messagesCollection(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("messages")
}

func (r *messageRepository) Create(ctx context.Context, userID string, msg *model.Message) (*model.Message, error) {
	if msg.ID == "" {
		msg.ID = model.NewMessageID()
	}
	msg.UserID = userID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	docRef := r.messagesCollection(userID).Doc(string(msg.ID))
	if _, err := docRef.Set(ctx, toMessageDoc(msg)); err != nil {
		return nil, goerr.Wrap(err, "failed to create message")
	}

	return msg, nil
}

func (r *messageRepository) ListRecent(ctx context.Context, userID string, persona types.PersonaID, limit int) ([]*model.Message, error) {
	q := r.messagesCollection(userID).Query
	if persona != "" {
		q = q.Where("Persona", "==", persona.String())
	}
	iter := q.OrderBy("CreatedAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	messages := make([]*model.Message, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages",
				goerr.V("persona", persona),
			)
		}

		var d messageDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message")
		}

		messages = append(messages, fromMessageDoc(userID, &d))
	}

	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, userID string, id model.MessageID) error {
	docRef := r.messagesCollection(userID).Doc(string(id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "message not found", goerr.V("messageID", id))
		}
		return goerr.Wrap(err, "failed to get message", goerr.V("messageID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete message", goerr.V("messageID", id))
	}

	return nil
}

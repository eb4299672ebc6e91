package usecase

import (
	"context"
	"strings"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for the chat usecase
var (
	ErrUnknownPersona = goerr.New("unknown persona")
	ErrEmptyMessage   = goerr.New("message text is empty")
)

// DefaultMessageHistoryLimit bounds message listings when the caller passes
// no explicit limit
const DefaultMessageHistoryLimit = 50

// ChatUseCase runs one conversational turn: assemble historical context,
// persist the user message, complete the reply, persist it.
type ChatUseCase struct {
	uc *UseCases
}

func newChatUseCase(uc *UseCases) *ChatUseCase {
	return &ChatUseCase{uc: uc}
}

// messageRecordSource adapts MessageRepository to the assembler's candidate
// source; the tag is the persona filter
type messageRecordSource struct {
	repo interfaces.MessageRepository
}

func (s *messageRecordSource) RecentRecords(ctx context.Context, userID, tag string, limit int) ([]model.EmbeddedRecord, error) {
	msgs, err := s.repo.ListRecent(ctx, userID, types.PersonaID(tag), limit)
	if err != nil {
		return nil, err
	}

	records := make([]model.EmbeddedRecord, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, m.ToEmbeddedRecord())
	}
	return records, nil
}

// Personas returns the configured personas in configuration order
func (x *ChatUseCase) Personas() []*model.Persona {
	if x.uc.personas == nil {
		return nil
	}
	return x.uc.personas.List()
}

// SendMessage runs one turn with the given persona and returns the persisted
// assistant reply. Embedding and context retrieval are best-effort; only a
// chat-completion failure fails the turn.
func (x *ChatUseCase) SendMessage(ctx context.Context, userID string, personaID types.PersonaID, text string) (*model.Message, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(ErrEmptyMessage, "cannot send empty message")
	}
	if x.uc.personas == nil {
		return nil, goerr.New("no personas configured")
	}
	persona := x.uc.personas.Get(personaID)
	if persona == nil {
		return nil, goerr.Wrap(ErrUnknownPersona, "persona not found", goerr.V("persona", personaID))
	}
	if x.uc.chat == nil {
		return nil, goerr.New("chat client is not configured")
	}

	userMsg := &model.Message{
		Persona: personaID,
		Role:    types.RoleUser,
		Text:    text,
	}
	if x.uc.embedder != nil {
		vec, err := x.uc.embedder.Embed(ctx, text)
		if err != nil {
			logger.Warn("failed to embed user message, storing without embedding",
				"error", err.Error(),
			)
		} else {
			userMsg.Embedding = vec
		}
	}
	// Context is assembled before the user message is persisted so the live
	// message never ranks against itself. The embedding computed above is
	// reused for ranking.
	outbound := text
	if x.uc.assembler != nil {
		assembled := x.uc.assembler.BuildContext(ctx, &messageRecordSource{repo: x.uc.repo.Message()}, model.RetrievalQuery{
			UserID:        userID,
			Text:          text,
			TopK:          x.uc.retrieval.ChatTopK,
			MinSimilarity: x.uc.retrieval.ChatMinSimilarity,
			Tag:           personaID.String(),
			Vector:        userMsg.Embedding,
		})
		outbound = assembled.Message
		logger.Debug("assembled retrieval context",
			"candidates", assembled.CandidateCount,
			"matches", assembled.MatchCount,
			"embeddingOK", assembled.EmbeddingOK,
		)
	}

	if _, err := x.uc.repo.Message().Create(ctx, userID, userMsg); err != nil {
		return nil, goerr.Wrap(err, "failed to persist user message")
	}
	x.uc.msgCache.invalidate(userID, personaID)

	reply, err := x.uc.chat.Complete(ctx, persona.SystemPrompt, outbound)
	if err != nil {
		return nil, goerr.Wrap(err, "chat completion failed", goerr.V("persona", personaID))
	}

	asstMsg := &model.Message{
		Persona: personaID,
		Role:    types.RoleAssistant,
		Text:    reply,
	}
	if x.uc.embedder != nil {
		vec, err := x.uc.embedder.Embed(ctx, reply)
		if err != nil {
			logger.Warn("failed to embed assistant reply, storing without embedding",
				"error", err.Error(),
			)
		} else {
			asstMsg.Embedding = vec
		}
	}

	saved, err := x.uc.repo.Message().Create(ctx, userID, asstMsg)
	if err != nil {
		logger.Warn("failed to persist assistant reply",
			"error", err.Error(),
		)
		saved = asstMsg
	}
	x.uc.msgCache.invalidate(userID, personaID)

	return saved, nil
}

// ListMessages returns recent history for the pair, newest first. Results are
// cached until the next send for the same pair.
func (x *ChatUseCase) ListMessages(ctx context.Context, userID string, personaID types.PersonaID, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageHistoryLimit
	}

	if msgs, ok := x.uc.msgCache.get(userID, personaID, limit); ok {
		return msgs, nil
	}

	msgs, err := x.uc.repo.Message().ListRecent(ctx, userID, personaID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list messages")
	}

	x.uc.msgCache.set(userID, personaID, limit, msgs)
	return msgs, nil
}

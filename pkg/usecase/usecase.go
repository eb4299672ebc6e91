package usecase

import (
	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/service/retrieval"
)

// RetrievalConfig carries the retrieval tuning knobs for the two surfaces
// that perform similarity search
type RetrievalConfig struct {
	ChatTopK           int
	ChatMinSimilarity  float64
	DiaryTopK          int
	DiaryMinSimilarity float64
}

// DefaultRetrievalConfig returns the production defaults
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		ChatTopK:           3,
		ChatMinSimilarity:  0.7,
		DiaryTopK:          5,
		DiaryMinSimilarity: 0.65,
	}
}

type UseCases struct {
	repo      interfaces.Repository
	embedder  interfaces.EmbeddingClient
	chat      interfaces.ChatClient
	assembler *retrieval.Assembler
	personas  *model.PersonaRegistry
	retrieval RetrievalConfig
	msgCache  *messageCache

	Chat  *ChatUseCase
	Diary *DiaryUseCase
	Tarot *TarotUseCase
	Stats *StatsUseCase
}

type Option func(*UseCases)

func WithEmbeddingClient(embedder interfaces.EmbeddingClient) Option {
	return func(uc *UseCases) {
		uc.embedder = embedder
	}
}

func WithChatClient(chat interfaces.ChatClient) Option {
	return func(uc *UseCases) {
		uc.chat = chat
	}
}

func WithPersonas(reg *model.PersonaRegistry) Option {
	return func(uc *UseCases) {
		uc.personas = reg
	}
}

func WithRetrievalConfig(cfg RetrievalConfig) Option {
	return func(uc *UseCases) {
		uc.retrieval = cfg
	}
}

func WithAssembler(a *retrieval.Assembler) Option {
	return func(uc *UseCases) {
		uc.assembler = a
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		retrieval: DefaultRetrievalConfig(),
		msgCache:  newMessageCache(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.assembler == nil && uc.embedder != nil {
		uc.assembler = retrieval.NewAssembler(uc.embedder)
	}

	uc.Chat = newChatUseCase(uc)
	uc.Diary = newDiaryUseCase(uc)
	uc.Tarot = newTarotUseCase(uc)
	uc.Stats = newStatsUseCase(uc)

	return uc
}

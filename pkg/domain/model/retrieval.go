package model

import (
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
)

// EmbeddedRecord is a record eligible for similarity-based retrieval: a chat
// message or diary entry with its pre-computed embedding. A record without an
// embedding is never returned by similarity search; it is silently excluded.
type EmbeddedRecord struct {
	ID        string
	Text      string
	Role      types.MessageRole
	Tag       string // categorical tag, e.g. the persona the record belongs to
	Embedding []float32
	CreatedAt time.Time
}

// RetrievalQuery is a single retrieval request. Constructed fresh per call,
// never persisted.
type RetrievalQuery struct {
	UserID        string
	Text          string
	TopK          int
	MinSimilarity float64
	Tag           string // optional persona filter; empty matches everything

	// Vector is an optional precomputed embedding of Text. When set, ranking
	// uses it directly instead of embedding Text again.
	Vector []float32
}

// AssembledContext is the outcome of one context-retrieval pass: the outbound
// message enriched with historical context, plus metadata about how the
// retrieval went. Retrieval failures degrade to an empty context rather than
// surfacing as errors, so Message always holds something usable.
type AssembledContext struct {
	// Message is the full outbound text: context block, separator, then the
	// live query. When no context was found it is the query text unchanged.
	Message string

	// ContextBlock is the rendered historical block alone; empty when
	// retrieval found nothing or was skipped.
	ContextBlock string

	// CandidateCount is how many candidates were considered for ranking
	CandidateCount int

	// MatchCount is how many candidates passed the similarity threshold
	MatchCount int

	// EmbeddingOK reports whether the query embedding was generated
	EmbeddingOK bool
}

// HasContext reports whether any historical context made it into the message
func (a *AssembledContext) HasContext() bool {
	return a.ContextBlock != ""
}

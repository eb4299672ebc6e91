package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Defaults for the assembler. Thresholds live in the retrieval query so that
// callers can tune them per surface; these only bound the candidate pool and
// the record fetch.
const (
	DefaultPoolSize     = 50
	DefaultFetchTimeout = 5 * time.Second
)

const contextHeader = "Relevant context from past conversations:"
const contextSeparator = "\n\n---\n\n"

// RecordSource supplies the candidate pool for ranking. When tag is
// non-empty, implementations may return an error if they cannot filter
// server-side; the assembler then falls back to an unfiltered fetch with
// client-side filtering.
type RecordSource interface {
	RecentRecords(ctx context.Context, userID, tag string, limit int) ([]model.EmbeddedRecord, error)
}

// Assembler builds an augmented message by retrieving semantically related
// records and prepending them to the live query. Retrieval is strictly
// best-effort: no failure inside BuildContext ever propagates to the caller.
type Assembler struct {
	embedder     interfaces.EmbeddingClient
	poolSize     int
	fetchTimeout time.Duration
	dedupe       bool
}

// AssemblerOption is a functional option for Assembler configuration
type AssemblerOption func(*Assembler)

// WithPoolSize overrides the candidate pool fetch size
func WithPoolSize(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.poolSize = n
		}
	}
}

// WithFetchTimeout overrides the record fetch timeout
func WithFetchTimeout(d time.Duration) AssemblerOption {
	return func(a *Assembler) {
		a.fetchTimeout = d
	}
}

// WithDedupe drops ranked records whose normalized text duplicates a
// higher-ranked one
func WithDedupe(enabled bool) AssemblerOption {
	return func(a *Assembler) {
		a.dedupe = enabled
	}
}

// NewAssembler creates a context assembler on top of an embedding client
func NewAssembler(embedder interfaces.EmbeddingClient, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		embedder:     embedder,
		poolSize:     DefaultPoolSize,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildContext embeds the query text and ranks the user's recent records
// against it, returning the query augmented with the most similar records.
// A precomputed query.Vector is used as-is; otherwise embedding and record
// fetch run in parallel. Any failure degrades to the bare query text: the
// conversational turn must never fail because retrieval did.
func (a *Assembler) BuildContext(ctx context.Context, source RecordSource, query model.RetrievalQuery) *model.AssembledContext {
	logger := logging.From(ctx)

	if strings.TrimSpace(query.Text) == "" {
		return &model.AssembledContext{Message: query.Text}
	}

	queryVec := query.Vector
	var candidates []model.EmbeddedRecord

	eg, egCtx := errgroup.WithContext(ctx)
	if len(queryVec) == 0 {
		eg.Go(func() error {
			vec, err := a.embedder.Embed(egCtx, query.Text)
			if err != nil {
				logger.Warn("failed to embed query, continuing without context",
					"error", err.Error(),
				)
				return nil
			}
			queryVec = vec
			return nil
		})
	}
	eg.Go(func() error {
		candidates = a.fetchCandidates(egCtx, source, query)
		return nil
	})
	_ = eg.Wait()

	result := &model.AssembledContext{
		Message:        query.Text,
		CandidateCount: len(candidates),
	}

	if len(queryVec) == 0 {
		return result
	}
	result.EmbeddingOK = true

	ranked := TopKSimilar(ctx, queryVec, candidates, query.TopK, query.MinSimilarity)
	if a.dedupe {
		ranked = dedupeByText(ranked)
	}
	if len(ranked) == 0 {
		return result
	}

	lines := make([]string, 0, len(ranked))
	for _, r := range ranked {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Record.Role, r.Record.Text))
	}

	result.MatchCount = len(ranked)
	result.ContextBlock = strings.Join(lines, "\n")
	result.Message = contextHeader + "\n" + result.ContextBlock + contextSeparator + query.Text

	return result
}

// fetchCandidates loads the candidate pool, retrying without the tag filter
// when the filtered query fails (typically a missing composite index)
func (a *Assembler) fetchCandidates(ctx context.Context, source RecordSource, query model.RetrievalQuery) []model.EmbeddedRecord {
	logger := logging.From(ctx)

	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	records, err := source.RecentRecords(ctx, query.UserID, query.Tag, a.poolSize)
	if err == nil {
		return records
	}

	if query.Tag == "" {
		logger.Warn("failed to fetch candidate records, continuing without context",
			"error", err.Error(),
		)
		return nil
	}

	logger.Warn("filtered record fetch failed, falling back to client-side filtering",
		"tag", query.Tag,
		"error", err.Error(),
	)

	records, err = source.RecentRecords(ctx, query.UserID, "", a.poolSize)
	if err != nil {
		logger.Warn("failed to fetch candidate records, continuing without context",
			"error", err.Error(),
		)
		return nil
	}

	filtered := make([]model.EmbeddedRecord, 0, len(records))
	for _, r := range records {
		if r.Tag == query.Tag {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func dedupeByText(results []SimilarityResult) []SimilarityResult {
	seen := make(map[string]struct{}, len(results))
	deduped := make([]SimilarityResult, 0, len(results))
	for _, r := range results {
		key := strings.ToLower(strings.TrimSpace(r.Record.Text))
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}

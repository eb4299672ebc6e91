package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/service/tarot"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const tarotSystemPrompt = "You are a warm, thoughtful tarot reader. " +
	"Interpret the drawn spread for the seeker's question in a gentle, encouraging tone. " +
	"Keep the interpretation under 300 words."

// ReadingResult is a reading joined with the full card data for each
// drawn position
type ReadingResult struct {
	Reading *model.TarotReading
	Cards   []tarot.RestoredCard
}

// TarotUseCase draws readings, interprets them, and keeps the per-user
// history bounded
type TarotUseCase struct {
	uc *UseCases
}

func newTarotUseCase(uc *UseCases) *TarotUseCase {
	return &TarotUseCase{uc: uc}
}

// Draw creates a new three-card reading. The LLM interpretation is
// best-effort: when it fails the reading is still stored and returned.
// History beyond the retention limit is pruned oldest-first.
func (x *TarotUseCase) Draw(ctx context.Context, userID, question string, mode types.TarotMode, topic types.TarotTopic) (*ReadingResult, error) {
	logger := logging.From(ctx)

	reading := &model.TarotReading{
		Question: strings.TrimSpace(question),
		Cards:    tarot.Draw(),
		Mode:     mode,
		Topic:    topic,
	}
	if err := reading.Validate(); err != nil {
		return nil, err
	}

	restored := tarot.Restore(ctx, reading.Cards)

	if x.uc.chat != nil {
		interpretation, err := x.uc.chat.Complete(ctx, tarotSystemPrompt, interpretationPrompt(reading, restored))
		if err != nil {
			logger.Warn("failed to generate tarot interpretation, storing reading without one",
				"error", err.Error(),
			)
		} else {
			reading.Interpretation = interpretation
		}
	}

	created, err := x.uc.repo.Tarot().Create(ctx, userID, reading)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist tarot reading")
	}

	x.pruneHistory(ctx, userID)

	return &ReadingResult{Reading: created, Cards: restored}, nil
}

// List returns readings newest first with their cards restored from the deck
func (x *TarotUseCase) List(ctx context.Context, userID string, limit int) ([]*ReadingResult, error) {
	if limit <= 0 || limit > model.MaxTarotHistory {
		limit = model.MaxTarotHistory
	}

	readings, err := x.uc.repo.Tarot().List(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tarot readings")
	}

	results := make([]*ReadingResult, 0, len(readings))
	for _, r := range readings {
		results = append(results, &ReadingResult{
			Reading: r,
			Cards:   tarot.Restore(ctx, r.Cards),
		})
	}
	return results, nil
}

// Delete removes one reading
func (x *TarotUseCase) Delete(ctx context.Context, userID string, id model.ReadingID) error {
	return x.uc.repo.Tarot().Delete(ctx, userID, id)
}

// pruneHistory deletes readings beyond the retention limit, oldest first.
// Pruning failures are logged, never surfaced.
func (x *TarotUseCase) pruneHistory(ctx context.Context, userID string) {
	logger := logging.From(ctx)

	readings, err := x.uc.repo.Tarot().List(ctx, userID, 0)
	if err != nil {
		logger.Warn("failed to list readings for pruning", "error", err.Error())
		return
	}
	if len(readings) <= model.MaxTarotHistory {
		return
	}

	for _, r := range readings[model.MaxTarotHistory:] {
		if err := x.uc.repo.Tarot().Delete(ctx, userID, r.ID); err != nil {
			logger.Warn("failed to prune old tarot reading",
				"readingID", r.ID,
				"error", err.Error(),
			)
		}
	}
}

func interpretationPrompt(reading *model.TarotReading, cards []tarot.RestoredCard) string {
	positions := positionNames(reading.Mode)

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", reading.Question)
	fmt.Fprintf(&b, "Topic: %s\n", reading.Topic)
	fmt.Fprintf(&b, "Spread: %s\n\n", reading.Mode)
	for i, c := range cards {
		position := ""
		if i < len(positions) {
			position = positions[i] + ": "
		}
		orientation := "upright"
		if c.Reversed {
			orientation = "reversed"
		}
		fmt.Fprintf(&b, "%s%s (%s) - %s\n", position, c.Card.Name, orientation, c.Meaning())
	}
	return b.String()
}

func positionNames(mode types.TarotMode) []string {
	switch mode {
	case types.TarotModeSituationAdviceOutcome:
		return []string{"Situation", "Advice", "Outcome"}
	default:
		return []string{"Past", "Present", "Future"}
	}
}

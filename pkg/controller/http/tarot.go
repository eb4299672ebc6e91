package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/service/tarot"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type drawnCardResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Reversed bool   `json:"reversed"`
	Meaning  string `json:"meaning"`
}

type readingResponse struct {
	ID             string              `json:"id"`
	Question       string              `json:"question"`
	Mode           string              `json:"mode"`
	Topic          string              `json:"topic"`
	Cards          []drawnCardResponse `json:"cards"`
	Interpretation string              `json:"interpretation,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func toReadingResponse(result *usecase.ReadingResult) readingResponse {
	cards := make([]drawnCardResponse, 0, len(result.Cards))
	for _, c := range result.Cards {
		cards = append(cards, drawnCardResponse{
			ID:       c.Card.ID,
			Name:     c.Card.Name,
			Reversed: c.Reversed,
			Meaning:  c.Meaning(),
		})
	}

	return readingResponse{
		ID:             string(result.Reading.ID),
		Question:       result.Reading.Question,
		Mode:           result.Reading.Mode.String(),
		Topic:          result.Reading.Topic.String(),
		Cards:          cards,
		Interpretation: result.Reading.Interpretation,
		CreatedAt:      result.Reading.CreatedAt,
	}
}

func drawTarotHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Question string `json:"question"`
		Mode     string `json:"mode"`
		Topic    string `json:"topic"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Question) == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("question is required"), http.StatusBadRequest)
			return
		}
		mode, err := types.ParseTarotMode(req.Mode)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		topic, err := types.ParseTarotTopic(req.Topic)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		result, err := uc.Tarot.Draw(ctx, userIDFrom(ctx), req.Question, mode, topic)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusCreated, toReadingResponse(result))
	}
}

func listTarotHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		results, err := uc.Tarot.List(ctx, userIDFrom(ctx), queryInt(r, "limit", 0))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		resp := make([]readingResponse, 0, len(results))
		for _, result := range results {
			resp = append(resp, toReadingResponse(result))
		}
		respondJSON(ctx, w, http.StatusOK, map[string]any{"readings": resp})
	}
}

func deleteTarotHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := uc.Tarot.Delete(ctx, userIDFrom(ctx), model.ReadingID(chi.URLParam(r, "readingID"))); err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// deckHandler serves the static card deck
func deckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"cards": tarot.Deck()})
	}
}

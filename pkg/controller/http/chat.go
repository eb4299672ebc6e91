package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type messageResponse struct {
	ID        string    `json:"id"`
	Persona   string    `json:"persona"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageResponse(m *model.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		Persona:   m.Persona.String(),
		Role:      m.Role.String(),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

type personaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Greeting    string `json:"greeting"`
}

func personasHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personas := uc.Chat.Personas()

		resp := make([]personaResponse, 0, len(personas))
		for _, p := range personas {
			resp = append(resp, personaResponse{
				ID:          p.ID.String(),
				Name:        p.Name,
				Description: p.Description,
				Greeting:    p.Greeting,
			})
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]any{"personas": resp})
	}
}

func sendMessageHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Message string `json:"message"`
		Persona string `json:"persona"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		reply, err := uc.Chat.SendMessage(ctx, userIDFrom(ctx), types.PersonaID(req.Persona), req.Message)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusOK, toMessageResponse(reply))
	}
}

func listMessagesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		persona := r.URL.Query().Get("persona")
		limit := queryInt(r, "limit", 0)

		msgs, err := uc.Chat.ListMessages(ctx, userIDFrom(ctx), types.PersonaID(persona), limit)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		resp := make([]messageResponse, 0, len(msgs))
		for _, m := range msgs {
			resp = append(resp, toMessageResponse(m))
		}
		respondJSON(ctx, w, http.StatusOK, map[string]any{"messages": resp})
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type diaryRequest struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Mood    string `json:"mood"`
	Content string `json:"content"`
}

type diaryResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Mood      string    `json:"mood"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDiaryResponse(e *model.DiaryEntry) diaryResponse {
	return diaryResponse{
		ID:        string(e.ID),
		Date:      e.Date,
		Title:     e.Title,
		Mood:      e.Mood.String(),
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func decodeDiary(r *http.Request) (*model.DiaryEntry, error) {
	var req diaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerr.Wrap(err, "invalid request body")
	}

	entry := &model.DiaryEntry{
		Date:    req.Date,
		Title:   req.Title,
		Mood:    types.Mood(req.Mood),
		Content: req.Content,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

func createDiaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entry, err := decodeDiary(r)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		created, err := uc.Diary.Create(ctx, userIDFrom(ctx), entry)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusCreated, toDiaryResponse(created))
	}
}

func listDiariesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entries, err := uc.Diary.List(ctx, userIDFrom(ctx))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		resp := make([]diaryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, toDiaryResponse(e))
		}
		respondJSON(ctx, w, http.StatusOK, map[string]any{"diaries": resp})
	}
}

func getDiaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entry, err := uc.Diary.Get(ctx, userIDFrom(ctx), model.DiaryID(chi.URLParam(r, "diaryID")))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusOK, toDiaryResponse(entry))
	}
}

func updateDiaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entry, err := decodeDiary(r)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		entry.ID = model.DiaryID(chi.URLParam(r, "diaryID"))

		updated, err := uc.Diary.Update(ctx, userIDFrom(ctx), entry)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusOK, toDiaryResponse(updated))
	}
}

func deleteDiaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := uc.Diary.Delete(ctx, userIDFrom(ctx), model.DiaryID(chi.URLParam(r, "diaryID"))); err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func relatedDiariesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := queryInt(r, "limit", 0)
		related, err := uc.Diary.Related(ctx, userIDFrom(ctx), model.DiaryID(chi.URLParam(r, "diaryID")), limit)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		resp := make([]diaryResponse, 0, len(related))
		for _, e := range related {
			resp = append(resp, toDiaryResponse(e))
		}
		respondJSON(ctx, w, http.StatusOK, map[string]any{"diaries": resp})
	}
}

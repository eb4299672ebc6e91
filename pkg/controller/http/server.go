package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/errutil"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

// New creates the API server. All /api routes require the caller identity
// header; authentication itself happens upstream.
func New(uc *usecase.UseCases) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("usecases are required")
	}

	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(userIDMiddleware)

		r.Get("/personas", personasHandler(uc))

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", sendMessageHandler(uc))
			r.Get("/messages", listMessagesHandler(uc))
		})

		r.Route("/diaries", func(r chi.Router) {
			r.Post("/", createDiaryHandler(uc))
			r.Get("/", listDiariesHandler(uc))
			r.Route("/{diaryID}", func(r chi.Router) {
				r.Get("/", getDiaryHandler(uc))
				r.Put("/", updateDiaryHandler(uc))
				r.Delete("/", deleteDiaryHandler(uc))
				r.Get("/related", relatedDiariesHandler(uc))
			})
		})

		r.Route("/tarot", func(r chi.Router) {
			r.Post("/", drawTarotHandler(uc))
			r.Get("/", listTarotHandler(uc))
			r.Get("/deck", deckHandler())
			r.Delete("/{readingID}", deleteTarotHandler(uc))
		})

		r.Get("/stats", statsHandler(uc))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/service/chat"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
)

// UserIDHeader carries the caller identity resolved by the upstream edge.
// The server trusts it; authentication is not this process's job.
const UserIDHeader = "X-Sanctum-User"

type ctxUserIDKey struct{}

// userIDMiddleware requires the identity header on every API request
func userIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			http.Error(w, "user identity required", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(ctxUserIDKey{}).(string)
	return userID
}

// statusFromError maps domain errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnknownPersona),
		errors.Is(err, usecase.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

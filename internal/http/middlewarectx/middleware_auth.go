// Package middlewarectx содержит HTTP middleware аутентификации.
//
// AuthMiddleware проверяет наличие и валидность токена в заголовке
// Authorization, загружает снимок аккаунта и кладёт его в контекст запроса.
// Сообщения 401 различают отсутствующий, некорректный и просроченный токен,
// а также токен на удалённый аккаунт — этого требует внешний контракт.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	libjwt "github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ViewerKey — ключ снимка аккаунта в контексте.
const ViewerKey Key = "viewer"

// Service описывает интерфейс сервиса аутентификации для middleware.
type Service interface {
	// ParseToken проверяет токен и возвращает uid аккаунта.
	ParseToken(tokenStr string) (string, error)
	// GetViewer загружает снимок аккаунта для модели доступа.
	GetViewer(ctx context.Context, userUID string) (*access.Viewer, error)
}

// ViewerFromContext достаёт снимок аккаунта из контекста запроса.
func ViewerFromContext(ctx context.Context) (*access.Viewer, bool) {
	viewer, ok := ctx.Value(ViewerKey).(*access.Viewer)
	return viewer, ok && viewer != nil
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен доступа
// в заголовке Authorization и кладёт снимок аккаунта в контекст запроса.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Error("missing authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Access denied. No token provided."))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userUID, err := authService.ParseToken(tokenStr)
			if err != nil {
				if errors.Is(err, libjwt.ErrTokenExpired) {
					log.Error("token expired", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("Token expired."))
					return
				}
				log.Error("invalid token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid token."))
				return
			}

			viewer, err := authService.GetViewer(r.Context(), userUID)
			if err != nil {
				if errors.Is(err, access.ErrNotFound) {
					log.Error("token user not found", slog.String("user_uid", userUID))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("Invalid token. User not found."))
					return
				}
				log.Error("failed to load viewer", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Authentication failed."))
				return
			}

			ctx := context.WithValue(r.Context(), ViewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

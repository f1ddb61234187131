// Package feed реализует HTTP-обработчик персональной ленты планов.
package feed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Response — ответ с персональной лентой аккаунта.
type Response struct {
	Count int               `json:"count"`
	Feed  []models.FeedItem `json:"feed"`
}

// Service описывает интерфейс бизнес-логики сборки ленты.
type Service interface {
	Feed(ctx context.Context, viewer *access.Viewer) ([]models.FeedItem, error)
}

// Handler обрабатывает HTTP-запросы персональной ленты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Персональная лента
// @Description Возвращает планы тренеров из фолловингов аккаунта с признаком покупки, новые первыми.
// @Tags Social
// @Produce  json
// @Success 200 {object} Response "Лента планов"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /feed [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.feed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	viewer, ok := middlewarectx.ViewerFromContext(r.Context())
	if !ok {
		log.Error("viewer not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Access denied. No token provided."))
		return
	}

	items, err := h.service.Feed(r.Context(), viewer)
	if err != nil {
		log.Error("failed to build feed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching feed", err.Error()))
		return
	}

	render.JSON(w, r, Response{
		Count: len(items),
		Feed:  items,
	})
}

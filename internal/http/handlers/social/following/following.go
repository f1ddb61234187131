// Package following реализует HTTP-обработчик списка фолловингов аккаунта.
package following

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Response — ответ со списком тренеров в фолловингах аккаунта.
type Response struct {
	Count    int               `json:"count"`
	Trainers []models.UserInfo `json:"trainers"`
}

// Service описывает интерфейс бизнес-логики чтения фолловингов.
type Service interface {
	Following(ctx context.Context, userUID string) ([]*models.User, error)
}

// Handler обрабатывает HTTP-запросы списка фолловингов.
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
// @Summary Список фолловингов
// @Description Возвращает тренеров, которых фолловит аккаунт.
// @Tags Social
// @Produce  json
// @Success 200 {object} Response "Список тренеров"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.following"
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

	trainers, err := h.service.Following(r.Context(), viewer.UID)
	if err != nil {
		log.Error("failed to list following", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching following list", err.Error()))
		return
	}

	infos := make([]models.UserInfo, 0, len(trainers))
	for _, trainer := range trainers {
		infos = append(infos, trainer.Info())
	}

	render.JSON(w, r, Response{
		Count:    len(infos),
		Trainers: infos,
	})
}

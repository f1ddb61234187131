// Package unfollow реализует HTTP-обработчик удаления тренера из фолловингов.
package unfollow

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Response — ответ успешного анфолловинга.
type Response struct {
	Message string `json:"message"`
}

// Service описывает интерфейс бизнес-логики анфолловинга.
type Service interface {
	Unfollow(ctx context.Context, viewer *access.Viewer, trainerUID string) error
}

// Handler обрабатывает HTTP-запросы на анфолловинг тренера.
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
// @Summary Отфолловить тренера
// @Description Убирает тренера из фолловингов аккаунта; подписки на планы не затрагиваются.
// @Tags Social
// @Produce  json
// @Param trainerId path string true "Идентификатор тренера"
// @Success 200 {object} Response "Тренер отфолловлен"
// @Failure 400 {object} response.ErrorResponse "Фолловинга не было"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow/{trainerId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.unfollow"
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

	trainerUID := chi.URLParam(r, "trainerId")
	if err := h.service.Unfollow(r.Context(), viewer, trainerUID); err != nil {
		switch {
		case errors.Is(err, access.ErrNotFollowing):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You are not following this trainer"))
		default:
			log.Error("failed to unfollow trainer", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error unfollowing trainer", err.Error()))
		}
		return
	}

	log.Info("unfollowed trainer",
		slog.String("follower_uid", viewer.UID),
		slog.String("trainer_uid", trainerUID))
	render.JSON(w, r, Response{Message: "Successfully unfollowed trainer"})
}

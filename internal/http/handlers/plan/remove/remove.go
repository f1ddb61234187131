// Package remove реализует HTTP-обработчик удаления плана.
package remove

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

// Response — ответ успешного удаления плана.
type Response struct {
	Message string `json:"message"`
}

// Service описывает интерфейс бизнес-логики удаления плана.
type Service interface {
	Remove(ctx context.Context, viewer *access.Viewer, planUID string) error
}

// Handler обрабатывает HTTP-запросы на удаление плана.
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
// @Summary Удалить план
// @Description Удаляет план вместе с подписками всех аккаунтов на него. Доступно только тренеру-владельцу.
// @Tags Plans
// @Produce  json
// @Param planId path string true "Идентификатор плана"
// @Success 200 {object} Response "План удалён"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "План принадлежит другому тренеру"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/{planId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"
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

	planUID := chi.URLParam(r, "planId")
	if err := h.service.Remove(r.Context(), viewer, planUID); err != nil {
		switch {
		case errors.Is(err, access.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
		case errors.Is(err, access.ErrForbidden):
			log.Error("delete denied", slog.String("user_uid", viewer.UID), slog.String("plan_uid", planUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("You can only delete your own plans"))
		default:
			log.Error("failed to delete plan", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error deleting plan", err.Error()))
		}
		return
	}

	log.Info("plan deleted", slog.String("plan_uid", planUID))
	render.JSON(w, r, Response{Message: "Plan deleted successfully"})
}

// Package remove реализует HTTP-обработчик отмены подписки на план.
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

// Response — ответ успешной отмены подписки.
type Response struct {
	Message string `json:"message"`
}

// Service описывает интерфейс бизнес-логики отмены подписки.
type Service interface {
	Unsubscribe(ctx context.Context, viewer *access.Viewer, planUID string) error
}

// Handler обрабатывает HTTP-запросы на отмену подписки.
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
// @Summary Отменить подписку
// @Description Снимает подписку аккаунта с плана; сам план не удаляется.
// @Tags Subscriptions
// @Produce  json
// @Param planId path string true "Идентификатор плана"
// @Success 200 {object} Response "Подписка отменена"
// @Failure 400 {object} response.ErrorResponse "Подписки не было"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{planId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
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
	if err := h.service.Unsubscribe(r.Context(), viewer, planUID); err != nil {
		switch {
		case errors.Is(err, access.ErrNotSubscribed):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You are not subscribed to this plan"))
		default:
			log.Error("failed to unsubscribe", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error cancelling subscription", err.Error()))
		}
		return
	}

	log.Info("subscription removed",
		slog.String("user_uid", viewer.UID),
		slog.String("plan_uid", planUID))
	render.JSON(w, r, Response{Message: "Successfully unsubscribed from plan"})
}

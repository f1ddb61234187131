// Package read реализует HTTP-обработчик чтения одного плана.
//
// Полные данные получают владелец и подписчик. Всем остальным, включая
// тренеров без подписки, возвращается 403, но тело ответа несёт превью
// плана — двойное назначение этого ответа закреплено внешним контрактом.
package read

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
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Response — ответ с полными данными плана.
type Response struct {
	Plan models.PlanFull `json:"plan"`
}

// ForbiddenResponse — 403-ответ с превью плана в теле.
type ForbiddenResponse struct {
	Error   string             `json:"error"`
	Preview models.PlanPreview `json:"preview"`
}

// Service описывает интерфейс бизнес-логики чтения плана.
type Service interface {
	Get(ctx context.Context, planUID string) (*models.Plan, error)
}

// Handler обрабатывает HTTP-запросы на чтение плана.
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
// @Summary Прочитать план
// @Description Возвращает полные данные плана владельцу и подписчику; остальным — 403 с превью в теле.
// @Tags Plans
// @Produce  json
// @Param planId path string true "Идентификатор плана"
// @Success 200 {object} Response "Полные данные плана"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 403 {object} ForbiddenResponse "Нет доступа, в теле превью"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/{planId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.read"
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
	plan, err := h.service.Get(r.Context(), planUID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
			return
		}
		log.Error("failed to read plan", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching plan", err.Error()))
		return
	}

	if access.ReadTier(viewer, plan) != access.TierFull {
		log.Info("preview access only",
			slog.String("user_uid", viewer.UID),
			slog.String("plan_uid", plan.UID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ForbiddenResponse{
			Error:   "Access denied. Subscribe to view full plan details.",
			Preview: plan.Preview(),
		})
		return
	}

	render.JSON(w, r, Response{Plan: plan.Full()})
}

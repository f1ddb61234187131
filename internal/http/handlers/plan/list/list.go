// Package list реализует HTTP-обработчик списка всех планов.
//
// Для каждого плана уровень видимости вычисляется заново на каждый запрос:
// подписчики и тренеры получают полные данные, остальные — превью без
// описания с приглашением подписаться.
package list

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

// Response — ответ со списком планов, спроецированных по уровню видимости.
type Response struct {
	Count int   `json:"count"`
	Plans []any `json:"plans"`
}

// Service описывает интерфейс бизнес-логики списка планов.
type Service interface {
	List(ctx context.Context) ([]*models.Plan, error)
}

// Handler обрабатывает HTTP-запросы на список планов.
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
// @Summary Список планов
// @Description Возвращает все планы, новые первыми. Полные данные видят подписчики и тренеры, остальные получают превью.
// @Tags Plans
// @Produce  json
// @Success 200 {object} Response "Список планов"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"
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

	plans, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching plans", err.Error()))
		return
	}

	shaped := make([]any, 0, len(plans))
	for _, plan := range plans {
		if access.ListTier(viewer, plan) == access.TierFull {
			shaped = append(shaped, plan.Full())
			continue
		}
		preview := plan.Preview()
		hasAccess := false
		preview.HasAccess = &hasAccess
		preview.Message = "Subscribe to view full details"
		shaped = append(shaped, preview)
	}

	render.JSON(w, r, Response{
		Count: len(shaped),
		Plans: shaped,
	})
}

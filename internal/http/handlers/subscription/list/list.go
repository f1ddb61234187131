// Package list реализует HTTP-обработчик списка подписок аккаунта.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Item — элемент списка подписок: полный план и дата оформления.
type Item struct {
	Plan         models.PlanFull `json:"plan"`
	SubscribedAt time.Time       `json:"subscribedAt"`
}

// Response — ответ со списком подписок аккаунта.
type Response struct {
	Count         int    `json:"count"`
	Subscriptions []Item `json:"subscriptions"`
}

// Service описывает интерфейс бизнес-логики чтения подписок.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы списка подписок.
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
// @Summary Список подписок
// @Description Возвращает подписки аккаунта с полными планами, новые первыми.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} Response "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
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

	subs, err := h.service.List(r.Context(), viewer.UID)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching subscriptions", err.Error()))
		return
	}

	items := make([]Item, 0, len(subs))
	for _, sub := range subs {
		items = append(items, Item{
			Plan:         sub.Plan.Full(),
			SubscribedAt: sub.SubscribedAt,
		})
	}

	render.JSON(w, r, Response{
		Count:         len(items),
		Subscriptions: items,
	})
}

// Package create реализует HTTP-обработчик оформления подписки на план.
//
// Оплата делегируется провайдеру через сервис подписок; по умолчанию это
// симулятор, который всегда успешен, но путь отказа оплаты также отражён
// в контракте ответов.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/payment"
)

// SubscriptionBody — тело подписки в успешном ответе.
type SubscriptionBody struct {
	Plan         models.PlanFull  `json:"plan"`
	Payment      *payment.Receipt `json:"payment"`
	SubscribedAt time.Time        `json:"subscribedAt"`
}

// Response — ответ успешного оформления подписки.
type Response struct {
	Message      string           `json:"message"`
	Subscription SubscriptionBody `json:"subscription"`
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, viewer *access.Viewer, planUID string) (*models.Subscription, *payment.Receipt, error)
}

// Handler обрабатывает HTTP-запросы на оформление подписки.
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
// @Summary Подписаться на план
// @Description Оформляет подписку аккаунта на план с симулированной оплатой.
// @Tags Subscriptions
// @Produce  json
// @Param planId path string true "Идентификатор плана"
// @Success 201 {object} Response "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Повторная подписка или отказ оплаты"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{planId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
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
	sub, receipt, err := h.service.Subscribe(r.Context(), viewer, planUID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
		case errors.Is(err, access.ErrAlreadySubscribed):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You are already subscribed to this plan"))
		case errors.Is(err, payment.ErrPaymentFailed):
			log.Error("payment declined",
				slog.String("user_uid", viewer.UID),
				slog.String("plan_uid", planUID))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Payment failed"))
		default:
			log.Error("failed to subscribe", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error processing subscription", err.Error()))
		}
		return
	}

	log.Info("subscription created",
		slog.String("user_uid", viewer.UID),
		slog.String("plan_uid", planUID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "Successfully subscribed to plan",
		Subscription: SubscriptionBody{
			Plan:         sub.Plan.Full(),
			Payment:      receipt,
			SubscribedAt: sub.SubscribedAt,
		},
	})
}

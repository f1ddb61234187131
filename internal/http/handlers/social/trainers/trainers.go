// Package trainers реализует HTTP-обработчик каталога тренеров.
package trainers

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

// Item — тренер в каталоге с признаком фолловинга текущим аккаунтом.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsFollowing bool      `json:"isFollowing"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Response — ответ с каталогом тренеров.
type Response struct {
	Count    int    `json:"count"`
	Trainers []Item `json:"trainers"`
}

// Service описывает интерфейс бизнес-логики каталога тренеров.
type Service interface {
	Trainers(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает HTTP-запросы каталога тренеров.
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
// @Summary Каталог тренеров
// @Description Возвращает все аккаунты с ролью тренера с признаком фолловинга.
// @Tags Social
// @Produce  json
// @Success 200 {object} Response "Каталог тренеров"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trainers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.trainers"
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

	trainers, err := h.service.Trainers(r.Context())
	if err != nil {
		log.Error("failed to list trainers", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error fetching trainers", err.Error()))
		return
	}

	items := make([]Item, 0, len(trainers))
	for _, trainer := range trainers {
		items = append(items, Item{
			ID:          trainer.UID,
			Name:        trainer.Name,
			Email:       trainer.Email,
			IsFollowing: viewer.IsFollowing(trainer.UID),
			CreatedAt:   trainer.CreatedAt,
		})
	}

	render.JSON(w, r, Response{
		Count:    len(items),
		Trainers: items,
	})
}

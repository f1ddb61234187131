// Package follow реализует HTTP-обработчик фолловинга тренера.
package follow

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

// TrainerBody — данные тренера в успешном ответе.
type TrainerBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Response — ответ успешного фолловинга.
type Response struct {
	Message string      `json:"message"`
	Trainer TrainerBody `json:"trainer"`
}

// Service описывает интерфейс бизнес-логики фолловинга.
type Service interface {
	Follow(ctx context.Context, viewer *access.Viewer, trainerUID string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на фолловинг тренера.
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
// @Summary Зафолловить тренера
// @Description Добавляет тренера в фолловинги аккаунта; бесплатно и без доступа к платному контенту.
// @Tags Social
// @Produce  json
// @Param trainerId path string true "Идентификатор тренера"
// @Success 200 {object} Response "Тренер зафолловлен"
// @Failure 400 {object} response.ErrorResponse "Цель не тренер, сам себе или дубликат"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Тренер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow/{trainerId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.follow"
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
	trainer, err := h.service.Follow(r.Context(), viewer, trainerUID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Trainer not found"))
		case errors.Is(err, access.ErrNotTrainer):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You can only follow trainers"))
		case errors.Is(err, access.ErrSelfFollow):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You cannot follow yourself"))
		case errors.Is(err, access.ErrAlreadyFollowing):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("You are already following this trainer"))
		default:
			log.Error("failed to follow trainer", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error following trainer", err.Error()))
		}
		return
	}

	log.Info("followed trainer",
		slog.String("follower_uid", viewer.UID),
		slog.String("trainer_uid", trainerUID))
	render.JSON(w, r, Response{
		Message: "Successfully followed trainer",
		Trainer: TrainerBody{
			ID:    trainer.UID,
			Name:  trainer.Name,
			Email: trainer.Email,
		},
	})
}

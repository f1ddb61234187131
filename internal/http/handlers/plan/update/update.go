// Package update реализует HTTP-обработчик частичного обновления плана.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Response — ответ успешного обновления плана.
type Response struct {
	Message string          `json:"message"`
	Plan    models.PlanFull `json:"plan"`
}

// Service описывает интерфейс бизнес-логики обновления плана.
type Service interface {
	Update(ctx context.Context, viewer *access.Viewer, planUID string, patch models.DummyPlanPatch) (*models.Plan, error)
}

// Handler обрабатывает HTTP-запросы на обновление плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить план
// @Description Частично обновляет план. Доступно только тренеру-владельцу.
// @Tags Plans
// @Accept  json
// @Produce  json
// @Param planId path string true "Идентификатор плана"
// @Param request body models.DummyPlanPatch true "Изменяемые поля"
// @Success 200 {object} Response "План обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "План принадлежит другому тренеру"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/{planId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.update"
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

	var patch models.DummyPlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body"))
		return
	}

	if err := h.validate.Struct(patch); err != nil {
		log.Error("validation failed", sl.Err(err))
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body"))
		return
	}

	planUID := chi.URLParam(r, "planId")
	plan, err := h.service.Update(r.Context(), viewer, planUID, patch)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
		case errors.Is(err, access.ErrForbidden):
			log.Error("update denied", slog.String("user_uid", viewer.UID), slog.String("plan_uid", planUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("You can only update your own plans"))
		default:
			log.Error("failed to update plan", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("Error updating plan", err.Error()))
		}
		return
	}

	log.Info("plan updated", slog.String("plan_uid", planUID))
	render.JSON(w, r, Response{
		Message: "Plan updated successfully",
		Plan:    plan.Full(),
	})
}

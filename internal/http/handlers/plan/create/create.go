// Package create реализует HTTP-обработчик публикации нового плана тренером.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Response — ответ успешного создания плана.
type Response struct {
	Message string          `json:"message"`
	Plan    models.PlanFull `json:"plan"`
}

// Service описывает интерфейс бизнес-логики создания плана.
type Service interface {
	Create(ctx context.Context, viewer *access.Viewer, req models.DummyPlan) (*models.Plan, error)
}

// Handler обрабатывает HTTP-запросы на создание плана.
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
// @Summary Создать план
// @Description Публикует новый тренировочный план. Доступно только тренерам.
// @Tags Plans
// @Accept  json
// @Produce  json
// @Param request body models.DummyPlan true "Данные нового плана"
// @Success 201 {object} Response "План создан"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Аккаунт не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет создавать планы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.create"
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

	var req models.DummyPlan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Please provide title, description, price, and duration"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Please provide title, description, price, and duration"))
		return
	}

	plan, err := h.service.Create(r.Context(), viewer, req)
	if err != nil {
		if errors.Is(err, access.ErrForbidden) {
			log.Error("non-trainer tried to create plan", slog.String("user_uid", viewer.UID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Access denied. Trainers only."))
			return
		}
		log.Error("failed to create plan", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error creating plan", err.Error()))
		return
	}

	log.Info("plan created", slog.String("plan_uid", plan.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "Plan created successfully",
		Plan:    plan.Full(),
	})
}

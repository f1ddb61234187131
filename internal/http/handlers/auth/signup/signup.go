// Package signup реализует HTTP-обработчик регистрации аккаунта.
//
// Handler принимает JSON с именем, почтой, паролем и необязательной ролью,
// валидирует их, делегирует регистрацию сервису аутентификации и возвращает
// токен доступа вместе с данными созданного аккаунта.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	authservice "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user trainer"`
}

// Response — ответ успешной регистрации.
type Response struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    models.UserInfo `json:"user"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, name, email, rawPassword string, role models.Role) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
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
// @Summary Регистрация аккаунта
// @Description Создает аккаунт пользователя или тренера и возвращает токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового аккаунта"
// @Success 201 {object} Response "Аккаунт создан"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или занятая почта"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Please provide name, email, and password"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, fieldErr := range validateErrs {
				if fieldErr.Field() == "Role" {
					render.Status(r, http.StatusBadRequest)
					render.JSON(w, r, response.Error(`Invalid role. Must be "user" or "trainer"`))
					return
				}
			}
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Please provide name, email, and password"))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Error("duplicate email", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("User with this email already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Error creating user", err.Error()))
		return
	}

	log.Info("user registered", slog.String("user_uid", user.UID), slog.String("role", string(user.Role)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Info(),
	})
}

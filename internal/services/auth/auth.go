// Package services содержит логику бизнес-уровня для работы с аккаунтами и аутентификацией.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/password"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// ErrEmailTaken возвращается при регистрации на уже занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials возвращается при неверной паре почта-пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с аккаунтами в базе данных.
type UserRepository interface {
	// CreateUser сохраняет новый аккаунт и возвращает его uid.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает аккаунт по почте без учёта регистра.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает аккаунт по uid.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListSubscribedPlanUIDs возвращает подписки аккаунта для снимка доступа.
	ListSubscribedPlanUIDs(ctx context.Context, userUID string) (map[string]time.Time, error)
	// ListFollowingUIDs возвращает фолловинги аккаунта для снимка доступа.
	ListFollowingUIDs(ctx context.Context, followerUID string) ([]string, error)
}

// AuthService отвечает за регистрацию, авторизацию и загрузку снимка аккаунта.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает новый аккаунт с хэшированием пароля и выдаёт токен доступа.
// Роль по умолчанию — обычный пользователь.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string, role models.Role) (*models.User, string, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(uid)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет пароль аккаунта и выдаёт токен доступа.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// ParseToken проверяет токен доступа и возвращает uid аккаунта.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}

// GetViewer загружает снимок аккаунта для модели доступа: роль и множества
// подписок и фолловингов. Снимок собирается один раз на запрос.
func (s *AuthService) GetViewer(ctx context.Context, userUID string) (*access.Viewer, error) {
	const op = "services.auth.GetViewer"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, access.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subscriptions, err := s.users.ListSubscribedPlanUIDs(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	followingUIDs, err := s.users.ListFollowingUIDs(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	following := make(map[string]struct{}, len(followingUIDs))
	for _, uid := range followingUIDs {
		following[uid] = struct{}{}
	}
	return &access.Viewer{
		UID:           user.UID,
		Role:          user.Role,
		Subscriptions: subscriptions,
		Following:     following,
	}, nil
}

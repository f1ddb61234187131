// Package models содержит доменные структуры маркетплейса: пользователей,
// тренировочные планы и подписки, а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Role описывает закрытое множество ролей аккаунта.
// На проводе роль передаётся строками "user" и "trainer".
type Role string

const (
	// RoleUser обычный пользователь: подписывается на планы и фолловит тренеров.
	RoleUser Role = "user"
	// RoleTrainer тренер: публикует платные планы.
	RoleTrainer Role = "trainer"
)

// Valid сообщает, входит ли значение в множество допустимых ролей.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTrainer
}

// CanPublishPlans сообщает, может ли роль создавать и править планы.
func (r Role) CanPublishPlans() bool {
	return r == RoleTrainer
}

// User представляет зарегистрированный аккаунт: пользователя или тренера.
type User struct {
	UID          string    // Уникальный идентификатор аккаунта
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная, без учёта регистра)
	PasswordHash string    // Хэш пароля
	Role         Role      // Роль аккаунта
	CreatedAt    time.Time // Дата регистрации
}

// TrainerRef ссылка на тренера в JSON-ответах с планами.
// Email опускается там, где исходный контракт его не отдаёт (превью).
type TrainerRef struct {
	UID   string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UserInfo представление аккаунта в ответах аутентификации.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Info возвращает представление аккаунта для ответов аутентификации.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:    u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

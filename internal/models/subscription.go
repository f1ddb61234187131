package models

import "time"

// Subscription связывает аккаунт с купленным планом.
// Пара (аккаунт, план) уникальна на уровне хранилища.
type Subscription struct {
	Plan         *Plan     // Купленный план с данными тренера
	SubscribedAt time.Time // Момент оформления подписки
}

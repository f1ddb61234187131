package models

import "time"

// Plan представляет тренировочный план, опубликованный тренером.
// Поля TrainerName и TrainerEmail подтягиваются join-ом при чтении,
// сам владелец плана после создания не меняется.
type Plan struct {
	UID          string    // Уникальный идентификатор плана
	Title        string    // Название
	Description  string    // Полное описание (скрывается в превью)
	Price        float64   // Цена, >= 0, фиксированная валюта USD
	Duration     int       // Длительность в днях, >= 1
	TrainerUID   string    // Идентификатор тренера-владельца
	TrainerName  string    // Имя тренера
	TrainerEmail string    // Почта тренера
	CreatedAt    time.Time // Дата создания
}

// DummyPlan используется для приёма данных из JSON-запроса на создание плана.
// Price указатель, чтобы отличать нулевую цену от отсутствующего поля.
type DummyPlan struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Duration    int      `json:"duration" validate:"required,gte=1"`
}

// DummyPlanPatch используется для частичного обновления плана:
// nil-поля остаются без изменений.
type DummyPlanPatch struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *int     `json:"duration" validate:"omitempty,gte=1"`
}

// PlanFull полное JSON-представление плана для аккаунтов с доступом.
type PlanFull struct {
	UID         string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Duration    int        `json:"duration"`
	Trainer     TrainerRef `json:"trainer"`
	CreatedAt   time.Time  `json:"createdAt"`
	HasAccess   bool       `json:"hasAccess"`
}

// PlanPreview урезанное JSON-представление плана: без описания и почты тренера.
// HasAccess и Message появляются только в списке планов; в теле 403-ответа
// превью отдаётся без них.
type PlanPreview struct {
	UID       string     `json:"_id"`
	Title     string     `json:"title"`
	Price     float64    `json:"price"`
	Duration  int        `json:"duration"`
	Trainer   TrainerRef `json:"trainer"`
	HasAccess *bool      `json:"hasAccess,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// Full собирает полное представление плана.
func (p *Plan) Full() PlanFull {
	return PlanFull{
		UID:         p.UID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Duration:    p.Duration,
		Trainer: TrainerRef{
			UID:   p.TrainerUID,
			Name:  p.TrainerName,
			Email: p.TrainerEmail,
		},
		CreatedAt: p.CreatedAt,
		HasAccess: true,
	}
}

// Preview собирает урезанное представление плана.
func (p *Plan) Preview() PlanPreview {
	return PlanPreview{
		UID:      p.UID,
		Title:    p.Title,
		Price:    p.Price,
		Duration: p.Duration,
		Trainer: TrainerRef{
			UID:  p.TrainerUID,
			Name: p.TrainerName,
		},
	}
}

// FeedItem элемент персональной ленты: план тренера из списка подписок
// на тренеров с признаком уже купленного плана. Описание в ленте отдаётся
// всегда, независимо от покупки.
type FeedItem struct {
	UID         string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Duration    int        `json:"duration"`
	Trainer     TrainerRef `json:"trainer"`
	IsPurchased bool       `json:"isPurchased"`
	CreatedAt   time.Time  `json:"createdAt"`
}

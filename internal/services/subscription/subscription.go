// Package services содержит бизнес-логику оформления и снятия подписок на планы.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/payment"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// ReadPlan возвращает план по uid с данными тренера.
	ReadPlan(ctx context.Context, planUID string) (*models.Plan, error)
	// CreateSubscription оформляет подписку и возвращает момент оформления.
	CreateSubscription(ctx context.Context, userUID, planUID string) (time.Time, error)
	// RemoveSubscription снимает подписку, возвращает количество удалённых строк.
	RemoveSubscription(ctx context.Context, userUID, planUID string) (int, error)
	// ListSubscriptions возвращает подписки аккаунта с данными планов.
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// EventPublisher описывает публикацию доменных событий. Nil-издатель
// отключает события.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionService реализует оформление, чтение и снятие подписок.
// Оплата делегируется провайдеру; по умолчанию это симулятор, который
// всегда успешен.
type SubscriptionService struct {
	repo     SubscriptionRepository
	provider payment.Provider
	events   EventPublisher
	log      *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, provider payment.Provider, events EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		provider: provider,
		events:   events,
		log:      log,
	}
}

// subscriptionCreatedEvent тело события subscription.created.
type subscriptionCreatedEvent struct {
	UserUID       string    `json:"user_uid"`
	PlanUID       string    `json:"plan_uid"`
	TrainerUID    string    `json:"trainer_uid"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	SubscribedAt  time.Time `json:"subscribed_at"`
}

// Subscribe оформляет подписку аккаунта на план: проверяет существование
// плана, отсутствие дубликата, списывает оплату и сохраняет подписку.
// Гонка двух одновременных подписок разрешается уникальным ограничением
// хранилища: вторая вставка возвращает ошибку дубликата.
func (s *SubscriptionService) Subscribe(ctx context.Context, viewer *access.Viewer, planUID string) (*models.Subscription, *payment.Receipt, error) {
	const op = "services.subscription.Subscribe"
	plan, err := s.repo.ReadPlan(ctx, planUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, access.ErrNotFound
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.CheckSubscribe(viewer, plan); err != nil {
		return nil, nil, err
	}

	receipt, err := s.provider.Charge(ctx, viewer.UID, planUID, plan.Price)
	if err != nil {
		return nil, nil, payment.ErrPaymentFailed
	}
	if !receipt.Success {
		return nil, nil, payment.ErrPaymentFailed
	}

	subscribedAt, err := s.repo.CreateSubscription(ctx, viewer.UID, planUID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, nil, access.ErrAlreadySubscribed
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created subscription",
		slog.String("user_uid", viewer.UID),
		slog.String("plan_uid", planUID),
		slog.String("transaction_id", receipt.TransactionID))

	if s.events != nil {
		event := subscriptionCreatedEvent{
			UserUID:       viewer.UID,
			PlanUID:       planUID,
			TrainerUID:    plan.TrainerUID,
			Amount:        receipt.Amount,
			TransactionID: receipt.TransactionID,
			SubscribedAt:  subscribedAt,
		}
		if err := s.events.Publish("subscription.created", event); err != nil {
			s.log.Warn("failed to publish subscription event", slog.Any("err", err))
		}
	}

	return &models.Subscription{Plan: plan, SubscribedAt: subscribedAt}, receipt, nil
}

// List возвращает подписки аккаунта с данными планов.
func (s *SubscriptionService) List(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userUID)
}

// Unsubscribe снимает подписку аккаунта с плана.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, viewer *access.Viewer, planUID string) error {
	const op = "services.subscription.Unsubscribe"
	if err := access.CheckUnsubscribe(viewer, planUID); err != nil {
		return err
	}
	count, err := s.repo.RemoveSubscription(ctx, viewer.UID, planUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return access.ErrNotSubscribed
	}
	s.log.Info("removed subscription",
		slog.String("user_uid", viewer.UID),
		slog.String("plan_uid", planUID))
	return nil
}

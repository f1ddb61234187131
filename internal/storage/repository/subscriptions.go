package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// CreateSubscription оформляет подписку аккаунта на план и возвращает момент
// оформления. Повторная подписка на тот же план упирается в уникальное
// ограничение (user_uid, plan_uid) и распознаётся через IsUniqueViolation.
func (s *Storage) CreateSubscription(ctx context.Context, userUID, planUID string) (time.Time, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return time.Time{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan_uid)
			  VALUES ($1, $2)
			  RETURNING subscribed_at`
	var subscribedAt time.Time
	if err := s.DB.QueryRowContext(ctx, query, userUID, planUID).Scan(&subscribedAt); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return subscribedAt, nil
}

// RemoveSubscription снимает подписку аккаунта с плана и возвращает
// количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, userUID, planUID string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE user_uid = $1 AND plan_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, planUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions возвращает подписки аккаунта с данными планов,
// свежие первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `, sub.subscribed_at
			  FROM subscriptions sub
			  JOIN plans p ON p.uid = sub.plan_uid
			  JOIN users u ON u.uid = p.trainer_uid
			  WHERE sub.user_uid = $1
			  ORDER BY sub.subscribed_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var p models.Plan
		var subscribedAt time.Time
		if err := rows.Scan(&p.UID, &p.Title, &p.Description, &p.Price, &p.Duration,
			&p.TrainerUID, &p.TrainerName, &p.TrainerEmail, &p.CreatedAt, &subscribedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &models.Subscription{Plan: &p, SubscribedAt: subscribedAt})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscribedPlanUIDs возвращает uid планов аккаунта с моментами подписки.
// Используется для сборки снимка аккаунта в модели доступа.
func (s *Storage) ListSubscribedPlanUIDs(ctx context.Context, userUID string) (map[string]time.Time, error) {
	const op = "storage.ListSubscribedPlanUIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan_uid, subscribed_at FROM subscriptions WHERE user_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]time.Time)
	for rows.Next() {
		var planUID string
		var subscribedAt time.Time
		if err := rows.Scan(&planUID, &subscribedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[planUID] = subscribedAt
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

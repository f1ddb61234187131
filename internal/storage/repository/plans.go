package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// planColumns общий список колонок плана с join-ом данных тренера.
const planColumns = `p.uid, p.title, p.description, p.price, p.duration,
			      p.trainer_uid, u.name, u.email, p.created_at`

func scanPlan(row interface{ Scan(dest ...any) error }) (*models.Plan, error) {
	var p models.Plan
	if err := row.Scan(&p.UID, &p.Title, &p.Description, &p.Price, &p.Duration,
		&p.TrainerUID, &p.TrainerName, &p.TrainerEmail, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlan вставляет новый план и возвращает его uid.
func (s *Storage) CreatePlan(ctx context.Context, plan models.Plan) (string, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO plans (title, description, price, duration, trainer_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		plan.Title, plan.Description, plan.Price, plan.Duration, plan.TrainerUID).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// ReadPlan возвращает план по uid вместе с именем и почтой тренера.
func (s *Storage) ReadPlan(ctx context.Context, planUID string) (*models.Plan, error) {
	const op = "storage.ReadPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans p
			  JOIN users u ON u.uid = p.trainer_uid
			  WHERE p.uid = $1`
	result, err := scanPlan(s.DB.QueryRowContext(ctx, query, planUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPlans возвращает все планы, новые первыми.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans p
			  JOIN users u ON u.uid = p.trainer_uid
			  ORDER BY p.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		item, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePlan обновляет изменяемые поля плана и возвращает количество
// изменённых строк. Владелец плана не меняется.
func (s *Storage) UpdatePlan(ctx context.Context, plan models.Plan) (int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE plans
			  SET title = $1, description = $2, price = $3, duration = $4
			  WHERE uid = $5`
	result, err := s.DB.ExecContext(ctx, query,
		plan.Title, plan.Description, plan.Price, plan.Duration, plan.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemovePlan удаляет план по uid и возвращает количество удалённых строк.
// Подписки на план удаляются каскадно на уровне базы, ни у одного аккаунта
// не остаётся висячей подписки.
func (s *Storage) RemovePlan(ctx context.Context, planUID string) (int, error) {
	const op = "storage.RemovePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM plans WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, planUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListFeedPlans возвращает планы тренеров, которых фолловит аккаунт,
// новые первыми.
func (s *Storage) ListFeedPlans(ctx context.Context, followerUID string) ([]*models.Plan, error) {
	const op = "storage.ListFeedPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans p
			  JOIN users u ON u.uid = p.trainer_uid
			  JOIN follows f ON f.trainer_uid = p.trainer_uid
			  WHERE f.follower_uid = $1
			  ORDER BY p.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, followerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		item, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

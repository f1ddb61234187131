package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// CreateFollow добавляет фолловинг аккаунта на тренера. Дубликат пары
// упирается в уникальное ограничение, самофолловинг — в check-ограничение.
func (s *Storage) CreateFollow(ctx context.Context, followerUID, trainerUID string) error {
	const op = "storage.CreateFollow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO follows (follower_uid, trainer_uid) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, followerUID, trainerUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveFollow удаляет фолловинг и возвращает количество удалённых строк.
func (s *Storage) RemoveFollow(ctx context.Context, followerUID, trainerUID string) (int, error) {
	const op = "storage.RemoveFollow"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM follows WHERE follower_uid = $1 AND trainer_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, followerUID, trainerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListFollowing возвращает тренеров, которых фолловит аккаунт.
func (s *Storage) ListFollowing(ctx context.Context, followerUID string) ([]*models.User, error) {
	const op = "storage.ListFollowing"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.name, u.email, u.password_hash, u.role, u.created_at
			  FROM follows f
			  JOIN users u ON u.uid = f.trainer_uid
			  WHERE f.follower_uid = $1
			  ORDER BY f.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, followerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFollowingUIDs возвращает uid тренеров, которых фолловит аккаунт.
// Используется для сборки снимка аккаунта в модели доступа.
func (s *Storage) ListFollowingUIDs(ctx context.Context, followerUID string) ([]string, error) {
	const op = "storage.ListFollowingUIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT trainer_uid FROM follows WHERE follower_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, followerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var trainerUID string
		if err := rows.Scan(&trainerUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, trainerUID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Package services содержит бизнес-логику социального графа: фолловинги
// тренеров и персональную ленту планов.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// SocialRepository определяет методы для работы с фолловингами и лентой.
type SocialRepository interface {
	// GetUser возвращает аккаунт по uid.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// CreateFollow добавляет фолловинг аккаунта на тренера.
	CreateFollow(ctx context.Context, followerUID, trainerUID string) error
	// RemoveFollow удаляет фолловинг, возвращает количество удалённых строк.
	RemoveFollow(ctx context.Context, followerUID, trainerUID string) (int, error)
	// ListFollowing возвращает тренеров, которых фолловит аккаунт.
	ListFollowing(ctx context.Context, followerUID string) ([]*models.User, error)
	// ListFeedPlans возвращает планы тренеров из фолловингов аккаунта.
	ListFeedPlans(ctx context.Context, followerUID string) ([]*models.Plan, error)
	// ListTrainers возвращает все аккаунты с ролью тренера.
	ListTrainers(ctx context.Context) ([]*models.User, error)
}

// SocialService реализует фолловинги и деривацию персональной ленты.
type SocialService struct {
	repo SocialRepository
	log  *slog.Logger
}

// NewSocialService создает новый экземпляр SocialService.
func NewSocialService(repo SocialRepository, log *slog.Logger) *SocialService {
	return &SocialService{
		repo: repo,
		log:  log,
	}
}

// Follow добавляет тренера в фолловинги аккаунта и возвращает данные тренера.
// Проверки в фиксированном порядке: существование цели, роль цели, запрет
// фолловить себя, отсутствие дубликата.
func (s *SocialService) Follow(ctx context.Context, viewer *access.Viewer, trainerUID string) (*models.User, error) {
	const op = "services.social.Follow"
	target, err := s.repo.GetUser(ctx, trainerUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, access.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.CheckFollow(viewer, target); err != nil {
		return nil, err
	}
	if err := s.repo.CreateFollow(ctx, viewer.UID, trainerUID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, access.ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created follow",
		slog.String("follower_uid", viewer.UID),
		slog.String("trainer_uid", trainerUID))
	return target, nil
}

// Unfollow убирает тренера из фолловингов аккаунта.
func (s *SocialService) Unfollow(ctx context.Context, viewer *access.Viewer, trainerUID string) error {
	const op = "services.social.Unfollow"
	if err := access.CheckUnfollow(viewer, trainerUID); err != nil {
		return err
	}
	count, err := s.repo.RemoveFollow(ctx, viewer.UID, trainerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return access.ErrNotFollowing
	}
	s.log.Info("removed follow",
		slog.String("follower_uid", viewer.UID),
		slog.String("trainer_uid", trainerUID))
	return nil
}

// Following возвращает тренеров, которых фолловит аккаунт.
func (s *SocialService) Following(ctx context.Context, userUID string) ([]*models.User, error) {
	return s.repo.ListFollowing(ctx, userUID)
}

// Feed собирает персональную ленту: планы тренеров из фолловингов аккаунта
// с признаком уже купленного плана. Проверка покупки — членство в множестве
// подписок снимка, по одному разу на план.
func (s *SocialService) Feed(ctx context.Context, viewer *access.Viewer) ([]models.FeedItem, error) {
	const op = "services.social.Feed"
	plans, err := s.repo.ListFeedPlans(ctx, viewer.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	feed := make([]models.FeedItem, 0, len(plans))
	for _, plan := range plans {
		feed = append(feed, models.FeedItem{
			UID:         plan.UID,
			Title:       plan.Title,
			Description: plan.Description,
			Price:       plan.Price,
			Duration:    plan.Duration,
			Trainer: models.TrainerRef{
				UID:   plan.TrainerUID,
				Name:  plan.TrainerName,
				Email: plan.TrainerEmail,
			},
			IsPurchased: viewer.IsSubscribedTo(plan.UID),
			CreatedAt:   plan.CreatedAt,
		})
	}
	return feed, nil
}

// Trainers возвращает все аккаунты с ролью тренера для страницы поиска.
func (s *SocialService) Trainers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListTrainers(ctx)
}

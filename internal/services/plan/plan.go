// Package services содержит бизнес-логику для управления планами и их кеширования.
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
)

// PlanRepository определяет методы для работы с планами в хранилище.
type PlanRepository interface {
	// CreatePlan вставляет новый план и возвращает его uid.
	CreatePlan(ctx context.Context, plan models.Plan) (string, error)
	// ReadPlan возвращает план по uid с данными тренера.
	ReadPlan(ctx context.Context, planUID string) (*models.Plan, error)
	// ListPlans возвращает все планы, новые первыми.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// UpdatePlan обновляет изменяемые поля плана.
	UpdatePlan(ctx context.Context, plan models.Plan) (int, error)
	// RemovePlan удаляет план, подписки снимаются каскадно.
	RemovePlan(ctx context.Context, planUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// PlanService реализует бизнес-логику работы с планами, включая кеширование
// чтения одного плана. Решения о видимости принимает пакет access.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func planCacheKey(planUID string) string {
	return fmt.Sprintf("plan:%s", planUID)
}

// Create создаёт новый план от имени тренера и возвращает его с данными владельца.
func (s *PlanService) Create(ctx context.Context, viewer *access.Viewer, req models.DummyPlan) (*models.Plan, error) {
	if err := access.CanCreatePlan(viewer); err != nil {
		return nil, err
	}
	plan := models.Plan{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    req.Duration,
		TrainerUID:  viewer.UID,
	}
	uid, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new plan", slog.String("plan_uid", uid))

	created, err := s.repo.ReadPlan(ctx, uid)
	if err != nil {
		return nil, err
	}
	cacheKey := planCacheKey(uid)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return created, nil
}

// List возвращает все планы, новые первыми. Уровень видимости каждого
// плана вычисляется вызывающим кодом заново на каждый запрос.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// Get возвращает план по uid, используя кеш или репозиторий.
func (s *PlanService) Get(ctx context.Context, planUID string) (*models.Plan, error) {
	var result *models.Plan
	cacheKey := planCacheKey(planUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadPlan(ctx, planUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, access.ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update частично обновляет план: nil-поля патча остаются без изменений.
// Порядок проверок фиксирован контрактом: сначала существование плана,
// затем владение.
func (s *PlanService) Update(ctx context.Context, viewer *access.Viewer, planUID string, patch models.DummyPlanPatch) (*models.Plan, error) {
	plan, err := s.repo.ReadPlan(ctx, planUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, access.ErrNotFound
		}
		return nil, err
	}
	if err := access.CanEditPlan(viewer, plan); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		plan.Title = *patch.Title
	}
	if patch.Description != nil {
		plan.Description = *patch.Description
	}
	if patch.Price != nil {
		plan.Price = *patch.Price
	}
	if patch.Duration != nil {
		plan.Duration = *patch.Duration
	}

	if _, err := s.repo.UpdatePlan(ctx, *plan); err != nil {
		return nil, err
	}
	s.log.Info("updated plan", slog.String("plan_uid", planUID))

	cacheKey := planCacheKey(planUID)
	if err := s.cache.Set(cacheKey, plan, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return plan, nil
}

// Remove удаляет план владельца и инвалидирует кеш. Подписки всех аккаунтов
// на план снимаются каскадно на уровне хранилища.
func (s *PlanService) Remove(ctx context.Context, viewer *access.Viewer, planUID string) error {
	plan, err := s.repo.ReadPlan(ctx, planUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return access.ErrNotFound
		}
		return err
	}
	if err := access.CanEditPlan(viewer, plan); err != nil {
		return err
	}

	if _, err := s.repo.RemovePlan(ctx, planUID); err != nil {
		return err
	}
	s.log.Info("removed plan", slog.String("plan_uid", planUID))

	cacheKey := planCacheKey(planUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

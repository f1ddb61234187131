package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePlan(ctx context.Context, plan models.Plan) (string, error) {
	args := m.Called(ctx, plan)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) ReadPlan(ctx context.Context, planUID string) (*models.Plan, error) {
	args := m.Called(ctx, planUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}
func (m *RepoMock) UpdatePlan(ctx context.Context, plan models.Plan) (int, error) {
	args := m.Called(ctx, plan)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemovePlan(ctx context.Context, planUID string) (int, error) {
	args := m.Called(ctx, planUID)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func trainerViewer(uid string) *access.Viewer {
	return &access.Viewer{UID: uid, Role: models.RoleTrainer}
}

func userViewer(uid string) *access.Viewer {
	return &access.Viewer{UID: uid, Role: models.RoleUser}
}

func TestPlanService_Create(t *testing.T) {
	price := 29.99
	req := models.DummyPlan{
		Title:       "Marathon Prep",
		Description: "16 week plan",
		Price:       &price,
		Duration:    112,
	}
	created := &models.Plan{
		UID:        "plan-1",
		Title:      "Marathon Prep",
		TrainerUID: "trainer-1",
	}

	tests := []struct {
		name       string
		viewer     *access.Viewer
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:   "тренер создает план",
			viewer: trainerViewer("trainer-1"),
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p models.Plan) bool {
					return p.Title == req.Title && p.Price == price && p.TrainerUID == "trainer-1"
				})).Return("plan-1", nil).Once()
				r.On("ReadPlan", mock.Anything, "plan-1").Return(created, nil).Once()
				c.On("Set", "plan:plan-1", created, time.Hour).Return(nil).Once()
			},
		},
		{
			name:       "обычный пользователь получает отказ",
			viewer:     userViewer("user-1"),
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    access.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := NewPlanService(repo, cache, newNoopLogger())

			plan, err := svc.Create(context.Background(), tt.viewer, req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "plan-1", plan.UID)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPlanService_Get_CacheMiss(t *testing.T) {
	stored := &models.Plan{UID: "plan-1", Title: "Marathon Prep"}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "plan:plan-1", mock.Anything).Return(false, nil).Once()
	repo.On("ReadPlan", mock.Anything, "plan-1").Return(stored, nil).Once()
	cache.On("Set", "plan:plan-1", stored, time.Hour).Return(nil).Once()

	svc := NewPlanService(repo, cache, newNoopLogger())
	plan, err := svc.Get(context.Background(), "plan-1")

	assert.NoError(t, err)
	assert.Equal(t, "Marathon Prep", plan.Title)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPlanService_Get_CacheHit(t *testing.T) {
	cached := &models.Plan{UID: "plan-1", Title: "Marathon Prep"}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "plan:plan-1", mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(**models.Plan)
		*ptr = cached
	}).Return(true, nil).Once()

	svc := NewPlanService(repo, cache, newNoopLogger())
	plan, err := svc.Get(context.Background(), "plan-1")

	assert.NoError(t, err)
	assert.Equal(t, cached, plan)
	repo.AssertNotCalled(t, "ReadPlan", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestPlanService_Get_NotFound(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "plan:missing", mock.Anything).Return(false, nil).Once()
	repo.On("ReadPlan", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

	svc := NewPlanService(repo, cache, newNoopLogger())
	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestPlanService_Update(t *testing.T) {
	stored := &models.Plan{
		UID:        "plan-1",
		Title:      "Marathon Prep",
		Price:      29.99,
		Duration:   112,
		TrainerUID: "trainer-1",
	}
	newTitle := "Marathon Prep v2"

	tests := []struct {
		name       string
		viewer     *access.Viewer
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:   "владелец обновляет план",
			viewer: trainerViewer("trainer-1"),
			setupMocks: func(r *RepoMock, c *CacheMock) {
				plan := *stored
				r.On("ReadPlan", mock.Anything, "plan-1").Return(&plan, nil).Once()
				r.On("UpdatePlan", mock.Anything, mock.MatchedBy(func(p models.Plan) bool {
					return p.Title == newTitle && p.Price == stored.Price
				})).Return(1, nil).Once()
				c.On("Set", "plan:plan-1", mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name:   "чужой тренер получает отказ",
			viewer: trainerViewer("trainer-2"),
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				plan := *stored
				r.On("ReadPlan", mock.Anything, "plan-1").Return(&plan, nil).Once()
			},
			wantErr: access.ErrForbidden,
		},
		{
			name:   "план не найден",
			viewer: trainerViewer("trainer-1"),
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("ReadPlan", mock.Anything, "plan-1").Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: access.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := NewPlanService(repo, cache, newNoopLogger())

			patch := models.DummyPlanPatch{Title: &newTitle}
			plan, err := svc.Update(context.Background(), tt.viewer, "plan-1", patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newTitle, plan.Title)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPlanService_Remove(t *testing.T) {
	stored := &models.Plan{UID: "plan-1", TrainerUID: "trainer-1"}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ReadPlan", mock.Anything, "plan-1").Return(stored, nil).Once()
	repo.On("RemovePlan", mock.Anything, "plan-1").Return(1, nil).Once()
	cache.On("Invalidate", "plan:plan-1").Return(nil).Once()

	svc := NewPlanService(repo, cache, newNoopLogger())
	err := svc.Remove(context.Background(), trainerViewer("trainer-1"), "plan-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPlanService_Remove_CacheErrorNotFatal(t *testing.T) {
	stored := &models.Plan{UID: "plan-1", TrainerUID: "trainer-1"}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ReadPlan", mock.Anything, "plan-1").Return(stored, nil).Once()
	repo.On("RemovePlan", mock.Anything, "plan-1").Return(1, nil).Once()
	cache.On("Invalidate", "plan:plan-1").Return(errors.New("redis down")).Once()

	svc := NewPlanService(repo, cache, newNoopLogger())
	err := svc.Remove(context.Background(), trainerViewer("trainer-1"), "plan-1")

	assert.NoError(t, err)
}

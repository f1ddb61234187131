package services

import (
	"context"
	"database/sql"
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

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) CreateFollow(ctx context.Context, followerUID, trainerUID string) error {
	return m.Called(ctx, followerUID, trainerUID).Error(0)
}
func (m *RepoMock) RemoveFollow(ctx context.Context, followerUID, trainerUID string) (int, error) {
	args := m.Called(ctx, followerUID, trainerUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListFollowing(ctx context.Context, followerUID string) ([]*models.User, error) {
	args := m.Called(ctx, followerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) ListFeedPlans(ctx context.Context, followerUID string) ([]*models.Plan, error) {
	args := m.Called(ctx, followerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}
func (m *RepoMock) ListTrainers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func viewerWith(uid string, role models.Role, subs []string, following []string) *access.Viewer {
	subscriptions := make(map[string]time.Time, len(subs))
	for _, planUID := range subs {
		subscriptions[planUID] = time.Now()
	}
	followingSet := make(map[string]struct{}, len(following))
	for _, trainerUID := range following {
		followingSet[trainerUID] = struct{}{}
	}
	return &access.Viewer{UID: uid, Role: role, Subscriptions: subscriptions, Following: followingSet}
}

func TestSocialService_Follow(t *testing.T) {
	trainer := &models.User{UID: "trainer-1", Name: "Bob", Role: models.RoleTrainer}

	tests := []struct {
		name       string
		viewer     *access.Viewer
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:   "успешный фолловинг",
			viewer: viewerWith("user-1", models.RoleUser, nil, nil),
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "trainer-1").Return(trainer, nil).Once()
				r.On("CreateFollow", mock.Anything, "user-1", "trainer-1").Return(nil).Once()
			},
		},
		{
			name:   "тренер не найден",
			viewer: viewerWith("user-1", models.RoleUser, nil, nil),
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "trainer-1").Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: access.ErrNotFound,
		},
		{
			name:   "цель не тренер",
			viewer: viewerWith("user-1", models.RoleUser, nil, nil),
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "trainer-1").
					Return(&models.User{UID: "trainer-1", Role: models.RoleUser}, nil).Once()
			},
			wantErr: access.ErrNotTrainer,
		},
		{
			name:   "нельзя зафолловить себя",
			viewer: viewerWith("trainer-1", models.RoleTrainer, nil, nil),
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "trainer-1").Return(trainer, nil).Once()
			},
			wantErr: access.ErrSelfFollow,
		},
		{
			name:   "повторный фолловинг",
			viewer: viewerWith("user-1", models.RoleUser, nil, []string{"trainer-1"}),
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "trainer-1").Return(trainer, nil).Once()
			},
			wantErr: access.ErrAlreadyFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewSocialService(repo, newNoopLogger())

			got, err := svc.Follow(context.Background(), tt.viewer, "trainer-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Bob", got.Name)
			}
			repo.AssertExpectations(t)
		})
	}
}

// Несуществующая цель даёт ошибку "не найден" раньше проверки на самого себя.
func TestSocialService_Follow_MissingTargetBeatsSelfCheck(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, "user-1").Return(nil, sql.ErrNoRows).Once()

	svc := NewSocialService(repo, newNoopLogger())
	_, err := svc.Follow(context.Background(), viewerWith("user-1", models.RoleUser, nil, nil), "user-1")

	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestSocialService_Unfollow(t *testing.T) {
	tests := []struct {
		name       string
		viewer     *access.Viewer
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:   "успешный анфолловинг",
			viewer: viewerWith("user-1", models.RoleUser, nil, []string{"trainer-1"}),
			setupMocks: func(r *RepoMock) {
				r.On("RemoveFollow", mock.Anything, "user-1", "trainer-1").Return(1, nil).Once()
			},
		},
		{
			name:       "фолловинга не было",
			viewer:     viewerWith("user-1", models.RoleUser, nil, nil),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    access.ErrNotFollowing,
		},
		{
			name:   "фолловинг исчез между снимком и удалением",
			viewer: viewerWith("user-1", models.RoleUser, nil, []string{"trainer-1"}),
			setupMocks: func(r *RepoMock) {
				r.On("RemoveFollow", mock.Anything, "user-1", "trainer-1").Return(0, nil).Once()
			},
			wantErr: access.ErrNotFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewSocialService(repo, newNoopLogger())

			err := svc.Unfollow(context.Background(), tt.viewer, "trainer-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSocialService_Feed(t *testing.T) {
	plans := []*models.Plan{
		{UID: "plan-1", Title: "Purchased", Description: "visible", TrainerUID: "trainer-1", TrainerName: "Bob"},
		{UID: "plan-2", Title: "Not purchased", Description: "also visible", TrainerUID: "trainer-1", TrainerName: "Bob"},
	}

	repo := new(RepoMock)
	repo.On("ListFeedPlans", mock.Anything, "user-1").Return(plans, nil).Once()

	svc := NewSocialService(repo, newNoopLogger())
	viewer := viewerWith("user-1", models.RoleUser, []string{"plan-1"}, []string{"trainer-1"})
	feed, err := svc.Feed(context.Background(), viewer)

	assert.NoError(t, err)
	assert.Len(t, feed, 2)
	assert.True(t, feed[0].IsPurchased)
	assert.False(t, feed[1].IsPurchased)
	// Описание в ленте присутствует и для некупленных планов.
	assert.Equal(t, "also visible", feed[1].Description)
}

func TestSocialService_Feed_Empty(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFeedPlans", mock.Anything, "user-1").Return([]*models.Plan{}, nil).Once()

	svc := NewSocialService(repo, newNoopLogger())
	feed, err := svc.Feed(context.Background(), viewerWith("user-1", models.RoleUser, nil, nil))

	assert.NoError(t, err)
	assert.Empty(t, feed)
}

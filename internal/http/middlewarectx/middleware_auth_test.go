package middlewarectx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	libjwt "github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// MockService реализует интерфейс middlewarectx.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ParseToken(tokenStr string) (string, error) {
	args := m.Called(tokenStr)
	return args.String(0), args.Error(1)
}

func (m *MockService) GetViewer(ctx context.Context, userUID string) (*access.Viewer, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*access.Viewer), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:       "валидный токен пропускает запрос дальше",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockService) {
				m.On("ParseToken", "good-token").Return("uid-1", nil)
				m.On("GetViewer", mock.Anything, "uid-1").
					Return(&access.Viewer{UID: "uid-1", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "запрос без токена",
			authHeader:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Access denied. No token provided."`,
		},
		{
			name:       "просроченный токен",
			authHeader: "Bearer expired-token",
			setupMock: func(m *MockService) {
				m.On("ParseToken", "expired-token").
					Return("", fmt.Errorf("jwt.ParseToken: %w", libjwt.ErrTokenExpired))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Token expired."`,
		},
		{
			name:       "некорректный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockService) {
				m.On("ParseToken", "bad-token").
					Return("", fmt.Errorf("jwt.ParseToken: %w", libjwt.ErrTokenInvalid))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid token."`,
		},
		{
			name:       "токен на удаленный аккаунт",
			authHeader: "Bearer orphan-token",
			setupMock: func(m *MockService) {
				m.On("ParseToken", "orphan-token").Return("uid-gone", nil)
				m.On("GetViewer", mock.Anything, "uid-gone").Return(nil, access.ErrNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid token. User not found."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				viewer, ok := ViewerFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "uid-1", viewer.UID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/plans", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(mockService, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
					"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestViewerFromContext_Missing(t *testing.T) {
	_, ok := ViewerFromContext(context.Background())
	assert.False(t, ok)
}

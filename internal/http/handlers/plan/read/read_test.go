package read

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitplanhub/internal/access"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, planUID string) (*models.Plan, error) {
	args := m.Called(ctx, planUID)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func requestWithViewer(method, url, planUID string, viewer *access.Viewer) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("planId", planUID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if viewer != nil {
		ctx = context.WithValue(ctx, middlewarectx.ViewerKey, viewer)
	}
	return req.WithContext(ctx)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	plan := &models.Plan{
		UID:          "plan-1",
		Title:        "Marathon Prep",
		Description:  "16 week plan",
		Price:        29.99,
		Duration:     112,
		TrainerUID:   "trainer-1",
		TrainerName:  "Bob",
		TrainerEmail: "bob@example.com",
	}

	tests := []struct {
		name           string
		viewer         *access.Viewer
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "подписчик читает полный план",
			viewer: &access.Viewer{
				UID:  "user-1",
				Role: models.RoleUser,
				Subscriptions: map[string]time.Time{
					"plan-1": time.Now(),
				},
			},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "plan-1").Return(plan, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"description":"16 week plan"`,
		},
		{
			name:   "владелец читает полный план",
			viewer: &access.Viewer{UID: "trainer-1", Role: models.RoleTrainer},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "plan-1").Return(plan, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"description":"16 week plan"`,
		},
		{
			name:   "пользователь без подписки получает 403 с превью",
			viewer: &access.Viewer{UID: "user-1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "plan-1").Return(plan, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"Access denied. Subscribe to view full plan details."`,
		},
		{
			name:   "чужой тренер без подписки тоже получает 403",
			viewer: &access.Viewer{UID: "trainer-2", Role: models.RoleTrainer},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "plan-1").Return(plan, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"preview"`,
		},
		{
			name:   "план не найден",
			viewer: &access.Viewer{UID: "user-1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "plan-1").Return(nil, access.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"Plan not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := requestWithViewer(http.MethodGet, "/plans/plan-1", "plan-1", tt.viewer)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

// В теле 403-ответа превью не содержит описания, почты тренера
// и полей hasAccess и message.
func TestReadHandler_ForbiddenPreviewShape(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	plan := &models.Plan{
		UID:          "plan-1",
		Title:        "Marathon Prep",
		Description:  "16 week plan",
		Price:        29.99,
		Duration:     112,
		TrainerUID:   "trainer-1",
		TrainerName:  "Bob",
		TrainerEmail: "bob@example.com",
	}

	mockService := new(MockService)
	mockService.On("Get", mock.Anything, "plan-1").Return(plan, nil)

	handler := New(logger, mockService)
	req := requestWithViewer(http.MethodGet, "/plans/plan-1", "plan-1",
		&access.Viewer{UID: "user-1", Role: models.RoleUser})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.Contains(t, body, "preview")

	var preview map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(body["preview"], &preview))
	assert.Contains(t, preview, "title")
	assert.Contains(t, preview, "price")
	assert.NotContains(t, preview, "description")
	assert.NotContains(t, preview, "hasAccess")
	assert.NotContains(t, preview, "message")

	var trainer map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(preview["trainer"], &trainer))
	assert.NotContains(t, trainer, "email")
}

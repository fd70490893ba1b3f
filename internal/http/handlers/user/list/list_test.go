package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-accounts/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler(t *testing.T) {
	created := time.Date(2022, 2, 1, 13, 37, 0, 0, time.UTC)

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список пользователей в порядке хранилища",
			setupMock: func(m *MockService) {
				m.On("GetAllUsers", mock.Anything).Return([]*models.User{
					{ID: 2, Username: "alpha", Password: "p", CreationDate: created, LoggedIn: true},
					{ID: 1, Username: "bravo", Password: "p", CreationDate: created, LoggedIn: false},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alpha"`,
		},
		{
			name: "пустой список",
			setupMock: func(m *MockService) {
				m.On("GetAllUsers", mock.Anything).Return([]*models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("GetAllUsers", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list users"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "password")

			mockService.AssertExpectations(t)
		})
	}
}

// Успешный ответ — голый JSON-массив, без конверта.
func TestListHandler_BareArrayBody(t *testing.T) {
	mockService := new(MockService)
	mockService.On("GetAllUsers", mock.Anything).Return([]*models.User{
		{ID: 1, Username: "alpha", CreationDate: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC), LoggedIn: true},
	}, nil)

	handler := New(newNoopLogger(), mockService)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(w.Body.String()), "["))

	var views []models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "alpha", views[0].Username)
}

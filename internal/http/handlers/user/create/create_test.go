package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-accounts/internal/models"
	"github.com/magabrotheeeer/user-accounts/internal/storage"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) IsExistingUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCreateHandler(t *testing.T) {
	created := time.Date(2022, 2, 1, 13, 37, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание пользователя",
			requestBody: Request{Username: "alice", Password: "secret"},
			setupMock: func(m *MockService) {
				m.On("IsExistingUsername", mock.Anything, "alice").Return(false, nil)
				m.On("CreateUser", mock.Anything, "alice", "secret").
					Return(&models.User{
						ID:           1,
						Username:     "alice",
						Password:     "secret",
						CreationDate: created,
						LoggedIn:     true,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустые имя и пароль",
			requestBody:    Request{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Username is a required field, field Password is a required field"}`,
		},
		{
			name:        "имя занято",
			requestBody: Request{Username: "alice", Password: "other"},
			setupMock: func(m *MockService) {
				m.On("IsExistingUsername", mock.Anything, "alice").Return(true, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"username alice is not available"}`,
		},
		{
			name:        "гонка проиграна на вставке",
			requestBody: Request{Username: "alice", Password: "secret"},
			setupMock: func(m *MockService) {
				m.On("IsExistingUsername", mock.Anything, "alice").Return(false, nil)
				m.On("CreateUser", mock.Anything, "alice", "secret").
					Return(nil, fmt.Errorf("storage.CreateUser: %w", storage.ErrUsernameTaken))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"username alice is not available"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{Username: "alice", Password: "secret"},
			setupMock: func(m *MockService) {
				m.On("IsExistingUsername", mock.Anything, "alice").Return(false, nil)
				m.On("CreateUser", mock.Anything, "alice", "secret").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}

func TestCreateHandler_ResponseOmitsPassword(t *testing.T) {
	mockService := new(MockService)
	mockService.On("IsExistingUsername", mock.Anything, "alice").Return(false, nil)
	mockService.On("CreateUser", mock.Anything, "alice", "secret").
		Return(&models.User{
			ID:           1,
			Username:     "alice",
			Password:     "secret",
			CreationDate: time.Date(2022, 2, 1, 13, 37, 0, 0, time.UTC),
			LoggedIn:     true,
		}, nil)

	handler := New(newNoopLogger(), mockService)

	body, err := json.Marshal(Request{Username: "alice", Password: "secret"})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret")
	// Дата создания отображается только календарной частью.
	assert.Contains(t, w.Body.String(), `"creationDate":"01.02.2022"`)
	assert.Contains(t, w.Body.String(), `"loggedIn":true`)
}

// Package create реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON с желаемыми учётными данными, валидирует их на
// непустоту, проверяет доступность имени и делегирует создание бизнес-логике.
// Конфликт имени — как на предварительной проверке, так и при проигранной
// гонке на вставке — возвращается как 409.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-accounts/internal/http/response"
	"github.com/magabrotheeeer/user-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/user-accounts/internal/models"
	"github.com/magabrotheeeer/user-accounts/internal/storage"
)

// Request — входные данные для регистрации. Оба поля обязательны и непустые.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler управляет HTTP-запросами на создание пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	IsExistingUsername(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать нового пользователя
// @Description Создает пользователя с желаемыми именем и паролем, если имя свободно.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Желаемые учетные данные"
// @Success 201 {object} models.UserResponse "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	exists, err := h.service.IsExistingUsername(r.Context(), req.Username)
	if err != nil {
		log.Error("failed to check username availability", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}
	if exists {
		log.Info("username is not available", slog.String("username", req.Username))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(fmt.Sprintf("username %s is not available", req.Username)))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		// Проверка и вставка не атомарны: гонку двух регистраций
		// разрешает уникальный индекс, проигравший получает конфликт.
		if errors.Is(err, storage.ErrUsernameTaken) {
			log.Info("lost insert race for username", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(fmt.Sprintf("username %s is not available", req.Username)))
			return
		}
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}

	log.Info("success to create user", slog.Int64("id", user.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, user.Response())
}

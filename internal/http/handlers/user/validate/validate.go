// Package validate реализует HTTP-обработчик проверки доступности имени.
// Имя доступно, если ни один существующий пользователь его не занимает.
// Ответ — голый boolean: true, если имя свободно.
package validate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-accounts/internal/http/response"
	"github.com/magabrotheeeer/user-accounts/internal/lib/sl"
)

// Request — структура входных данных с проверяемым именем.
type Request struct {
	Username string `json:"username"`
}

// Handler обрабатывает запросы на проверку доступности имени пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки занятости имени.
type Service interface {
	IsExistingUsername(ctx context.Context, username string) (bool, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить доступность имени
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Проверяемое имя"
// @Success 200 {boolean} boolean "true, если имя свободно"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.validate"

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

	exists, err := h.service.IsExistingUsername(r.Context(), req.Username)
	if err != nil {
		log.Error("failed to check username availability", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate username"))
		return
	}

	log.Info("username availability checked",
		slog.String("username", req.Username), slog.Bool("available", !exists))
	render.JSON(w, r, !exists)
}

// Package update реализует HTTP-обработчик обновления данных пользователя.
//
// Имя, дата рождения и признак входа перезаписываются значениями из запроса
// безусловно: это полная перезапись трёх полей, а не частичный патч.
// Пустая дата рождения сохраняется как отсутствующая.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-accounts/internal/http/response"
	"github.com/magabrotheeeer/user-accounts/internal/lib/dateonly"
	"github.com/magabrotheeeer/user-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/user-accounts/internal/models"
	"github.com/magabrotheeeer/user-accounts/internal/storage"
)

// Handler управляет HTTP-запросами на обновление пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления пользователя.
type Service interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserData(ctx context.Context, current *models.User, upd models.UpdateData) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить данные пользователя
// @Description Безусловно перезаписывает имя, дату рождения и признак входа пользователя.
// @Tags Users
// @Accept  json
// @Param id path int true "ID пользователя"
// @Param request body models.DummyUser true "Новые имя, дата рождения и признак входа"
// @Success 204 "Обновлено, тело пустое"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID, JSON или дата"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Новое имя пользователя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	// Отсутствующее в JSON поле loggedIn остаётся true, как и при создании.
	req := models.DummyUser{LoggedIn: true}
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	var birthday *time.Time
	if req.Birthday != "" {
		parsed, err := dateonly.Parse(req.Birthday)
		if err != nil {
			log.Error("failed to parse birthday", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("field birthday must be a date in format %s", dateonly.Layout)))
			return
		}
		birthday = &parsed
	}

	current, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("user not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(fmt.Sprintf("no user found with ID: %d", id)))
			return
		}
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	upd := models.UpdateData{
		Username: req.Username,
		Birthday: birthday,
		LoggedIn: req.LoggedIn,
	}
	if _, err = h.service.UpdateUserData(r.Context(), current, upd); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			log.Info("username is not available", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(fmt.Sprintf("username %s is not available", req.Username)))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	log.Info("success to update user", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

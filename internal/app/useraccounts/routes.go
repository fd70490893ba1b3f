// Package useraccounts собирает приложение сервиса учётных записей:
// маршруты, HTTP-сервер и его корректную остановку.
package useraccounts

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/create"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/health"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/login"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/user-accounts/internal/http/handlers/user/validate"
	"github.com/magabrotheeeer/user-accounts/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *services.UserService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", list.New(logger, userService).ServeHTTP)
		r.Post("/", create.New(logger, userService).ServeHTTP)
		// /register — алиас создания для упрощения клиентской архитектуры.
		r.Post("/register", create.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService).ServeHTTP)
		r.Post("/validate", validate.New(logger, userService).ServeHTTP)
		r.Get("/{id}", read.New(logger, userService).ServeHTTP)
		r.Put("/{id}", update.New(logger, userService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

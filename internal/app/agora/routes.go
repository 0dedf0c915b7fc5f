package agora

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/agora/docs"
	"github.com/magabrotheeeer/agora/internal/http/handlers/article/create"
	"github.com/magabrotheeeer/agora/internal/http/handlers/article/list"
	"github.com/magabrotheeeer/agora/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/agora/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/agora/internal/http/handlers/health"
	"github.com/magabrotheeeer/agora/internal/http/handlers/newsletter/subscribe"
	"github.com/magabrotheeeer/agora/internal/http/handlers/newsletter/subscribers"
	"github.com/magabrotheeeer/agora/internal/http/middlewarectx"
)

// AuthService регистрация и вход.
type AuthService interface {
	signup.Service
	login.Service
}

// ArticleService выдача и публикация статей.
type ArticleService interface {
	list.Service
	create.Service
}

// NewsletterService подписка и список подписчиков.
type NewsletterService interface {
	subscribe.Service
	subscribers.Service
}

// Services набор сервисов, которые обслуживают маршруты API.
type Services struct {
	Auth       AuthService
	Articles   ArticleService
	Newsletter NewsletterService
}

// RegisterRoutes регистрирует все маршруты приложения.
// Метрики HTTP регистрируются в reg, он же отдаётся на /metrics.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services Services, reg *prometheus.Registry) {
	metrics := middlewarectx.NewMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middlewarectx.Logger(logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
			MaxAge:         300,
		}),
		metrics.Handler,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger).ServeHTTP)

		r.Post("/auth/signup", signup.New(logger, services.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, services.Auth).ServeHTTP)

		r.Get("/articles", list.New(logger, services.Articles).ServeHTTP)
		r.Post("/articles", create.New(logger, services.Articles).ServeHTTP)

		r.Post("/newsletter/subscribe", subscribe.New(logger, services.Newsletter).ServeHTTP)
		// TODO: закрыть список подписчиков проверкой администратора, когда появятся сессии.
		r.Get("/newsletter/subscribers", subscribers.New(logger, services.Newsletter).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

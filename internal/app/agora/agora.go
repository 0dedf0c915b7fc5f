// Package agora собирает HTTP-приложение Agora: хранилище, кеш,
// брокер событий, сервисы и маршруты.
package agora

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/agora/internal/cache"
	"github.com/magabrotheeeer/agora/internal/config"
	"github.com/magabrotheeeer/agora/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/migrations"
	articleservice "github.com/magabrotheeeer/agora/internal/services/article"
	authservice "github.com/magabrotheeeer/agora/internal/services/auth"
	newsletterservice "github.com/magabrotheeeer/agora/internal/services/newsletter"
	"github.com/magabrotheeeer/agora/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.agora.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{
		logger: logger,
		db:     db,
	}

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// nil в интерфейсе, а не типизированный nil: сервис проверяет cache != nil.
	var articleCache articleservice.Cache
	if cfg.AddressRedis != "" {
		app.cache, err = cache.New(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		articleCache = app.cache
	} else {
		logger.Info("redis address is empty, articles cache disabled")
	}

	var publisher newsletterservice.Publisher
	if cfg.URL != "" {
		app.amqp, err = rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.ch, err = rabbitmq.SetupChannel(app.amqp, rabbitmq.NewsletterQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(app.ch, rabbitmq.Exchange)
	} else {
		logger.Info("rabbitmq url is empty, newsletter events disabled")
	}

	authService := authservice.NewService(db, cfg.AdminEmail, logger)
	articleService := articleservice.NewService(db, articleCache, cfg.ArticlesTTL, logger)
	newsletterService := newsletterservice.NewService(db, publisher, logger)

	if _, err = articleService.Seed(ctx); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:       authService,
		Articles:   articleService,
		Newsletter: newsletterService,
	}, reg)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает внешние ресурсы в порядке, обратном открытию.
func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}

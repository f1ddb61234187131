// Package fitplanhub собирает и запускает HTTP-сервис маркетплейса
// тренировочных планов.
package fitplanhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fitplanhub/internal/cache"
	"github.com/magabrotheeeer/fitplanhub/internal/config"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fitplanhub/internal/migrations"
	"github.com/magabrotheeeer/fitplanhub/internal/payment"
	authservice "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
	planservice "github.com/magabrotheeeer/fitplanhub/internal/services/plan"
	socialservice "github.com/magabrotheeeer/fitplanhub/internal/services/social"
	subservice "github.com/magabrotheeeer/fitplanhub/internal/services/subscription"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// App держит HTTP-сервер и внешние соединения сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	events *rabbitmq.Publisher
}

// New инициализирует хранилище, кеш, сервисы и маршруты приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Пустой адрес RabbitMQ отключает публикацию событий.
	var publisher *rabbitmq.Publisher
	var events subservice.EventPublisher
	if cfg.RabbitConnection.AddressRabbit != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitConnection.AddressRabbit, cfg.RabbitConnection.Exchange)
		if err != nil {
			return nil, err
		}
		events = publisher
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authSvc := authservice.NewAuthService(db, jwtMaker)
	planSvc := planservice.NewPlanService(db, cacheRedis, logger)
	subSvc := subservice.NewSubscriptionService(db, payment.NewSimulator(), events, logger)
	socialSvc := socialservice.NewSocialService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authSvc, planSvc, subSvc, socialSvc)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		events: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.events != nil {
			_ = a.events.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}

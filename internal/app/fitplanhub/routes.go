package fitplanhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/health"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/info"
	plancreate "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/create"
	planlist "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/update"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/social/feed"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/social/follow"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/social/following"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/social/trainers"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/social/unfollow"
	subcreate "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/subscription/list"
	subremove "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
	planservice "github.com/magabrotheeeer/fitplanhub/internal/services/plan"
	socialservice "github.com/magabrotheeeer/fitplanhub/internal/services/social"
	subservice "github.com/magabrotheeeer/fitplanhub/internal/services/subscription"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	db *repository.Storage,
	authSvc *authservice.AuthService,
	planSvc *planservice.PlanService,
	subSvc *subservice.SubscriptionService,
	socialSvc *socialservice.SocialService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/", info.New("1.0.0"))
		r.Get("/health", health.New(logger, db.DB))
		r.Post("/auth/signup", signup.New(logger, authSvc).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authSvc, logger))

			r.Post("/plans", plancreate.New(logger, planSvc).ServeHTTP)
			r.Get("/plans", planlist.New(logger, planSvc).ServeHTTP)
			r.Get("/plans/{planId}", planread.New(logger, planSvc).ServeHTTP)
			r.Put("/plans/{planId}", planupdate.New(logger, planSvc).ServeHTTP)
			r.Delete("/plans/{planId}", planremove.New(logger, planSvc).ServeHTTP)

			r.Post("/subscriptions/{planId}", subcreate.New(logger, subSvc).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, subSvc).ServeHTTP)
			r.Delete("/subscriptions/{planId}", subremove.New(logger, subSvc).ServeHTTP)

			r.Post("/follow/{trainerId}", follow.New(logger, socialSvc).ServeHTTP)
			r.Delete("/follow/{trainerId}", unfollow.New(logger, socialSvc).ServeHTTP)
			r.Get("/follow", following.New(logger, socialSvc).ServeHTTP)
			r.Get("/feed", feed.New(logger, socialSvc).ServeHTTP)
			r.Get("/trainers", trainers.New(logger, socialSvc).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

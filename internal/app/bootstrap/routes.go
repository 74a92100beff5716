// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/staffhub/internal/app/cache"
	dashboardfeature "github.com/dalemusser/staffhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/staffhub/internal/app/features/errors"
	evaluationsfeature "github.com/dalemusser/staffhub/internal/app/features/evaluations"
	healthfeature "github.com/dalemusser/staffhub/internal/app/features/health"
	usersfeature "github.com/dalemusser/staffhub/internal/app/features/users"
	"github.com/dalemusser/staffhub/internal/app/staff"
	evaluationstore "github.com/dalemusser/staffhub/internal/app/store/evaluations"
	metricsstore "github.com/dalemusser/staffhub/internal/app/store/metrics"
	userstore "github.com/dalemusser/staffhub/internal/app/store/users"
	"github.com/dalemusser/staffhub/internal/app/system/actor"
	"github.com/dalemusser/staffhub/internal/app/system/ratelimit"
	"github.com/dalemusser/staffhub/internal/app/system/reqlog"
	"github.com/dalemusser/staffhub/internal/app/system/txn"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. The staff service and its cache are
// built here once and shared by every feature handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := newStaffService(appCfg, deps, logger)

	r := chi.NewRouter()
	r.Use(reqlog.Middleware(logger))
	r.Use(actor.Middleware(appCfg.PlaceholderActor))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(svc, logger)
	usersHandler.RefreshLimit = ratelimit.New(appCfg.RefreshRateLimit, time.Minute)
	usersHandler.RefreshLimit.TrustProxy = appCfg.TrustProxyHeaders
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	evaluationsHandler := evaluationsfeature.NewHandler(svc, logger)
	r.Mount("/api/evaluations", evaluationsfeature.Routes(evaluationsHandler))

	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler))

	return r, nil
}

// newStaffService wires the stores, transaction runner, and cache into the
// staff service.
func newStaffService(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *staff.Service {
	db := deps.MongoDatabase
	return staff.New(staff.Deps{
		Users:       userstore.New(db),
		Evaluations: evaluationstore.New(db),
		Metrics:     metricsstore.New(db),
		Tx:          txn.New(deps.MongoClient),
		Cache:       cache.NewService(logger),
		Log:         logger,
	}, staff.Config{
		DefaultPageSize:    appCfg.DefaultPageSize,
		MaxPageSize:        appCfg.MaxPageSize,
		EvaluationPageSize: appCfg.EvaluationPageSize,
		PlaceholderActor:   appCfg.PlaceholderActor,
	})
}

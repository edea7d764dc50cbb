package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agentprompts/backend/docs"
	"github.com/agentprompts/backend/internal/app/api/handlers"
	mw "github.com/agentprompts/backend/internal/app/api/middleware"
	"github.com/agentprompts/backend/internal/app/service/analytics"
	"github.com/agentprompts/backend/internal/app/service/catalog"
	"github.com/agentprompts/backend/internal/app/service/eventlog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/app/service/webhookproc"
	"github.com/agentprompts/backend/internal/platform/provider"
	cfgpkg "github.com/agentprompts/backend/pkg/config"
	metrics "github.com/agentprompts/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log       *zap.SugaredLogger
	Cfg       *cfgpkg.Config
	Catalog   *catalog.Service
	Purchases *purchase.Service
	Events    *eventlog.Service
	Processor *webhookproc.Processor
	Provider  *provider.Client
	Track     *analytics.Dispatcher
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: d.Log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		d.Log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())

	// Webhook deliveries authenticate by signature, never by session.
	handlers.RegisterWebhookRoutes(apiV1, d.Processor)

	// Catalog browsing works anonymously; a session only unlocks premium
	// prompt bodies, so auth is optional here.
	browse := apiV1.Group("/")
	browse.Use(mw.OptionalAuth(d.Cfg))
	handlers.RegisterCatalogRoutes(browse, d.Catalog, d.Purchases, d.Log)

	authed := apiV1.Group("/")
	authed.Use(mw.RequireAuth(d.Cfg))
	handlers.RegisterPaymentRoutes(authed, browse, d.Cfg, d.Provider, d.Catalog, d.Purchases, d.Track, d.Log)
	handlers.RegisterAccountRoutes(authed, d.Purchases, d.Track, d.Log)

	admin := apiV1.Group("/admin")
	admin.Use(mw.RequireAuth(d.Cfg), mw.RequireAdmin(d.Cfg))
	handlers.RegisterAdminRoutes(admin, d.Purchases, d.Events)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)

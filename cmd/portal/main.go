package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getmentor/mentorship-portal/config"
	"github.com/getmentor/mentorship-portal/internal/backend"
	"github.com/getmentor/mentorship-portal/internal/cache"
	"github.com/getmentor/mentorship-portal/internal/handlers"
	"github.com/getmentor/mentorship-portal/internal/middleware"
	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/getmentor/mentorship-portal/internal/web"
	"github.com/getmentor/mentorship-portal/pkg/httpclient"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"github.com/getmentor/mentorship-portal/pkg/profiling"
	"github.com/getmentor/mentorship-portal/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerPageRoutes registers the portal screens and their actions
func registerPageRoutes(
	router *gin.Engine,
	pageRateLimiter, actionRateLimiter *middleware.RateLimiter,
	overviewHandler *handlers.OverviewHandler,
	sessionHandler *handlers.SessionHandler,
	profileHandler *handlers.ProfileHandler,
	mentorHandler *handlers.MentorHandler,
	progressHandler *handlers.ProgressHandler,
	resourceHandler *handlers.ResourceHandler,
	navHandler *handlers.NavHandler,
) {
	pages := router.Group("/", pageRateLimiter.Middleware())
	pages.GET("/", overviewHandler.Root)
	pages.GET("/overview", overviewHandler.Show)
	pages.GET("/sessions", sessionHandler.List)
	pages.GET("/sessions/join/:room", sessionHandler.Join)
	pages.GET("/settings", profileHandler.Show)
	pages.GET("/mentors", mentorHandler.List)
	pages.GET("/progress", progressHandler.Show)
	pages.GET("/resources", resourceHandler.List)
	pages.GET("/resources/:id/download", resourceHandler.Download)

	// SECURITY: form posts are small; cap them well below the default
	actions := router.Group("/", actionRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024))
	actions.POST("/overview/sessions/:id/:action", overviewHandler.Act)
	actions.POST("/sessions/refresh", sessionHandler.Refresh)
	actions.POST("/sessions/:id/:action", sessionHandler.Act)
	actions.POST("/settings/basic", profileHandler.SaveBasicDetails)
	actions.POST("/settings/social", profileHandler.SaveSocialLinks)
	actions.POST("/settings/password", profileHandler.ChangePassword)
	actions.POST("/mentors/:id/connect", mentorHandler.Connect)
	actions.POST("/nav/toggle", navHandler.ToggleSidebar)
}

// frontendLogSink returns where browser log batches are appended
func frontendLogSink(cfg *config.Config) io.Writer {
	if cfg.Logging.Dir == "" {
		return os.Stdout
	}
	return logger.RotatingWriter(cfg.Logging.Dir, "frontend.log", cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting mentorship portal",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.LogError(shutdownErr, "Failed to shutdown tracer")
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	// One backend client serves every workspace; the viewer's token travels in the request context
	httpClient := httpclient.NewStandardClient(time.Duration(cfg.Backend.TimeoutSeconds) * time.Second)
	api := backend.NewClient(cfg.Backend.BaseURL, httpClient)

	workspaces := cache.NewWorkspaceCache(
		time.Duration(cfg.Session.WorkspaceTTLMins)*time.Minute,
		func(id string) *views.Workspace {
			return views.NewWorkspace(id, api, views.Options{MeetingURLTemplate: cfg.Meeting.URLTemplate})
		},
	)

	templates, err := web.Templates()
	if err != nil {
		logger.Fatal("Failed to parse page templates", zap.Error(err))
	}

	// Initialize handlers
	overviewHandler := handlers.NewOverviewHandler()
	sessionHandler := handlers.NewSessionHandler()
	profileHandler := handlers.NewProfileHandler()
	mentorHandler := handlers.NewMentorHandler()
	progressHandler := handlers.NewProgressHandler()
	resourceHandler := handlers.NewResourceHandler()
	navHandler := handlers.NewNavHandler()
	healthHandler := handlers.NewHealthHandler(workspaces.IsReady)
	logsHandler := handlers.NewLogsHandler(frontendLogSink(cfg))

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true, // workspace and token cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters stop sweeping when the server shuts down
	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()

	opsRateLimiter := middleware.NewRateLimiter(limiterCtx, 100, 200) // 100 req/sec, burst of 200
	pageRateLimiter := middleware.NewRateLimiter(limiterCtx, 20, 40)  // 20 req/sec, burst of 40
	actionRateLimiter := middleware.NewRateLimiter(limiterCtx, 5, 10) // 5 req/sec, burst of 10
	logsRateLimiter := middleware.NewRateLimiter(limiterCtx, 2, 5)    // 2 req/sec, burst of 5

	// Operational endpoints carry no workspace
	ops := router.Group("/api")
	ops.GET("/healthcheck", opsRateLimiter.Middleware(), healthHandler.Healthcheck)
	ops.GET("/metrics", opsRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))
	ops.POST("/v1/logs", logsRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), logsHandler.ReceiveFrontendLogs)

	router.Use(middleware.ViewerMiddleware(cfg.Session.TokenCookie))
	router.Use(middleware.WorkspaceMiddleware(workspaces, middleware.CookieOptions{
		Name:       cfg.Session.WorkspaceCookie,
		Domain:     cfg.Session.CookieDomain,
		Secure:     cfg.Session.CookieSecure,
		MaxAgeSecs: cfg.Session.WorkspaceTTLMins * 60,
	}))

	registerPageRoutes(router, pageRateLimiter, actionRateLimiter,
		overviewHandler, sessionHandler, profileHandler, mentorHandler,
		progressHandler, resourceHandler, navHandler)

	// Downloads stream through the write deadline, so it leaves room beyond the backend timeout
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Duration(cfg.Backend.TimeoutSeconds)*time.Second + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Server forced to shutdown")
	}

	logger.Info("Server exited", zap.Int("workspaces", workspaces.Count()))
}

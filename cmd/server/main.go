package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	auditapp "github.com/realtyadmin/backend/internal/application/audit"
	clearanceapp "github.com/realtyadmin/backend/internal/application/clearance"
	dashboardapp "github.com/realtyadmin/backend/internal/application/dashboard"
	exportapp "github.com/realtyadmin/backend/internal/application/export"
	financeapp "github.com/realtyadmin/backend/internal/application/finance"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
	identityapp "github.com/realtyadmin/backend/internal/application/identity"
	orgapp "github.com/realtyadmin/backend/internal/application/organization"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/cache"
	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/realtyadmin/backend/internal/infrastructure/event"
	"github.com/realtyadmin/backend/internal/infrastructure/logger"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/internal/infrastructure/printing"
	"github.com/realtyadmin/backend/internal/infrastructure/storage"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"github.com/realtyadmin/backend/internal/interfaces/http/handler"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/realtyadmin/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/realtyadmin/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Realty Admin API
//	@version		1.0
//	@description	Back office API of a real-estate consultancy: property registry, client ledger, HR and employee clearance.

//	@contact.name	API Support
//	@contact.url	https://github.com/realtyadmin/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds the graceful shutdown of the HTTP server
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	obs, err := setupTelemetry(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer obs.shutdown(log)
	log = obs.logs.Bridge(log, cfg.Telemetry.ServiceName)

	log.Info("Starting Realty Admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
		logger.WithParameterizedQueries(cfg.IsProduction()))
	defer func() {
		total, slow, failed := gormLog.Stats().Snapshot()
		log.Info("Database statements", zap.Int64("total", total), zap.Int64("slow", slow), zap.Int64("failed", failed))
	}()
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	dbSystem := "postgresql"
	if db.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:        dbSystem,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if err := telemetry.RegisterDBPoolMetrics(db.DB, obs.meter.Meter(cfg.Telemetry.ServiceName)); err != nil {
		log.Warn("Failed to register database pool metrics", zap.Error(err))
	}

	kv, err := cache.Open(ctx, cfg.Redis, cfg.IsProduction(), log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Error("Error closing key-value store", zap.Error(err))
		}
	}()
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if kv.IsRedis() {
		blacklist = auth.NewRedisTokenBlacklist(kv.Client)
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)
	ownerRepo := persistence.NewGormOwnerRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	fundRepo := persistence.NewGormFundReferenceRepository(db.DB)
	seriesRepo := persistence.NewGormVoucherSeriesRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	leaveRepo := persistence.NewGormLeaveRepository(db.DB)
	shiftRepo := persistence.NewGormShiftScheduleRepository(db.DB)
	tardinessRepo := persistence.NewGormTardinessRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	positionRepo := persistence.NewGormPositionRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	clearanceRepo := persistence.NewGormClearanceRepository(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	metrics := obs.metrics

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, activityRepo, eventBus, metrics,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		}, log)
	userService := identityapp.NewUserService(userRepo, blacklist, eventBus, cfg.JWT.RefreshTokenExpiration, log)
	auditService := auditapp.NewAuditService(activityRepo, log)

	ownerService := propertyapp.NewOwnerService(ownerRepo, propertyRepo, eventBus, log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, ownerRepo, unitRepo, eventBus, log)
	unitService := propertyapp.NewUnitService(unitRepo, propertyRepo, eventBus, log)

	fundService := financeapp.NewFundReferenceService(fundRepo, ledgerRepo, eventBus, log)
	voucherService := financeapp.NewVoucherService(seriesRepo, eventBus, metrics, log)
	ledgerService := financeapp.NewLedgerService(ledgerRepo, fundRepo, ownerRepo, eventBus, metrics, log)

	employeeService := hrapp.NewEmployeeService(employeeRepo, leaveRepo, tardinessRepo, shiftRepo,
		departmentRepo, positionRepo, eventBus, log)
	leaveService := hrapp.NewLeaveService(leaveRepo, employeeRepo, eventBus, metrics, log)
	shiftService := hrapp.NewShiftService(shiftRepo, employeeRepo, eventBus, log)
	tardinessService := hrapp.NewTardinessService(tardinessRepo, employeeRepo, shiftRepo, eventBus, log)
	hrReportService := hrapp.NewReportService(employeeRepo, leaveRepo, tardinessRepo, log)

	departmentService := orgapp.NewDepartmentService(departmentRepo, positionRepo, employeeRepo, eventBus, log)
	positionService := orgapp.NewPositionService(positionRepo, departmentRepo, eventBus, log)

	limits := clearance.Limits{MinLength: cfg.Clearance.MinTaskLength, MaxLength: cfg.Clearance.MaxTaskLength}
	draftService := clearanceapp.NewDraftService(templateRepo, clearanceRepo, departmentRepo,
		cache.NewDraftStore(kv.Store, cfg.Clearance.DraftTTL), limits, eventBus, metrics, log)
	clearanceService := clearanceapp.NewClearanceService(clearanceRepo, templateRepo, employeeRepo, eventBus, metrics, log)

	dashboardService := dashboardapp.NewDashboardService(dashboardapp.Repositories{
		Owners:        ownerRepo,
		Properties:    propertyRepo,
		Units:         unitRepo,
		VoucherSeries: seriesRepo,
		Leaves:        leaveRepo,
		Tardiness:     tardinessRepo,
		Clearances:    clearanceRepo,
	}, cache.NewWidgetStore(kv.Store), time.Local, log)

	renderer := newRenderer(cfg.Printing, log)
	if renderer != nil {
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()
	}
	exportService := exportapp.NewExportService(auditService, hrReportService, pdfRenderer(renderer),
		newArchive(ctx, cfg.Storage, log), exportapp.Config{
			CompanyName: cfg.App.Name,
			Location:    time.Local,
			LinkExpiry:  cfg.Storage.PresignExpiration,
		}, metrics, log)

	// Cross-module event handlers
	activityRecorder := auditapp.NewActivityRecorder(activityRepo, log)
	eventBus.Subscribe(activityRecorder)
	resignedHandler := clearanceapp.NewEmployeeResignedHandler(clearanceService, log)
	eventBus.Subscribe(resignedHandler)
	log.Info("Event handlers registered", zap.Strings("employee_resigned_events", resignedHandler.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// request id, recovery, tracing, access log, security headers, CORS,
	// body limit, metrics, rate limit, then JWT and the layers that read its claims
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     obs.tracer.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(metrics))
	newLimiter := func(scope string, limit int, window time.Duration) *middleware.RateLimiter {
		if kv.IsRedis() {
			return middleware.NewSharedRateLimiter(cache.NewRedisRateCounter(kv.Client, "realty:"+scope+":"), limit, window)
		}
		return middleware.NewRateLimiter(limit, window)
	}
	if cfg.HTTP.RateLimitEnabled {
		apiLimiter := newLimiter("api", cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer apiLimiter.Stop()
		engine.Use(middleware.RateLimit(apiLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Bool("shared", kv.IsRedis()),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revocations = authService
	jwtConfig.Logger = log
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)
	engine.Use(jwtAuth)
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:          obs.profiler.IsEnabled(),
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}))

	checks := map[string]handler.HealthCheck{
		"database": func(context.Context) error { return db.Ping() },
	}
	if kv.IsRedis() {
		checks["cache"] = func(ctx context.Context) error { return kv.Client.Ping(ctx).Err() }
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, checks)
	engine.GET("/health", systemHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Auth:          handler.NewAuthHandler(authService, userService),
		User:          handler.NewUserHandler(userService),
		Owner:         handler.NewOwnerHandler(ownerService),
		Property:      handler.NewPropertyHandler(propertyService),
		Unit:          handler.NewUnitHandler(unitService),
		FundReference: handler.NewFundReferenceHandler(fundService),
		Voucher:       handler.NewVoucherHandler(voucherService),
		Ledger:        handler.NewLedgerHandler(ledgerService),
		Employee:      handler.NewEmployeeHandler(employeeService),
		Leave:         handler.NewLeaveHandler(leaveService),
		Shift:         handler.NewShiftHandler(shiftService),
		Tardiness:     handler.NewTardinessHandler(tardinessService),
		HRReport:      handler.NewHRReportHandler(hrReportService),
		Department:    handler.NewDepartmentHandler(departmentService),
		Position:      handler.NewPositionHandler(positionService),
		Clearance:     handler.NewClearanceHandler(draftService, clearanceService),
		ActivityLog:   handler.NewActivityLogHandler(auditService),
		Export:        handler.NewExportHandler(exportService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	}, router.APIOptions{
		LoginGuard: middleware.RateLimitByKey(
			newLimiter("login", cfg.Auth.MaxLoginAttempts*2, time.Minute), middleware.LoginRateKey),
	})
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	r.Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// newRenderer starts the headless Chrome renderer, or returns nil when
// printing is disabled or Chrome cannot be launched
func newRenderer(cfg config.PrintingConfig, log *zap.Logger) *printing.ChromedpRenderer {
	if !cfg.Enabled {
		log.Info("PDF rendering disabled")
		return nil
	}
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.RenderTimeout,
		ExecPath:       cfg.ChromePath,
		NoSandbox:      true,
		MaxConcurrent:  cfg.MaxConcurrent,
		Logger:         log,
	})
	if err != nil {
		log.Warn("PDF rendering unavailable", zap.Error(err))
		return nil
	}
	return renderer
}

// pdfRenderer keeps a nil renderer a nil interface
func pdfRenderer(r *printing.ChromedpRenderer) printing.PDFRenderer {
	if r == nil {
		return nil
	}
	return r
}

// newArchive connects the S3 export archive, or returns nil when disabled
func newArchive(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) storage.ObjectStorage {
	if !cfg.Enabled {
		log.Info("Export archiving disabled")
		return nil
	}
	store, err := storage.NewS3ObjectStorage(ctx, &cfg,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.PresignExpiration))
	if err != nil {
		log.Warn("Export archive unavailable", zap.Error(err))
		return nil
	}
	return store
}

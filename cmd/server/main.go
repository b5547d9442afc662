package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propertyportal/budgeting/internal/application/budgeting"
	"github.com/propertyportal/budgeting/internal/domain/audit"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/propertyportal/budgeting/internal/infrastructure/config"
	"github.com/propertyportal/budgeting/internal/infrastructure/logger"
	"github.com/propertyportal/budgeting/internal/infrastructure/persistence/audited"
	"github.com/propertyportal/budgeting/internal/infrastructure/persistence/gormstore"
	"github.com/propertyportal/budgeting/internal/infrastructure/persistence/memory"
	"github.com/propertyportal/budgeting/internal/interfaces/http/handler"
	"github.com/propertyportal/budgeting/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting budgeting service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Store.Backend),
	)

	// Build the store backend and audit sink
	var (
		budgetStore   shared.Store[budget.Budget]
		serviceStore  shared.Store[catalog.Service]
		scheduleStore shared.Store[schedule.Schedule]
		suburbStore   shared.Store[catalog.Suburb]
		vendorStore   shared.Store[catalog.Vendor]
		sink          audit.Sink
	)
	switch cfg.Store.Backend {
	case "sqlite":
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := gormstore.Open(cfg.Store.DSN, gormLog)
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}
		budgetStore = gormstore.NewStore(db, "budget", budgeting.BudgetIdentity)
		serviceStore = gormstore.NewStore(db, "service", budgeting.ServiceIdentity)
		scheduleStore = gormstore.NewStore(db, "schedule", budgeting.ScheduleIdentity)
		suburbStore = gormstore.NewStore(db, "suburb", budgeting.SuburbIdentity)
		vendorStore = gormstore.NewStore(db, "vendor", budgeting.VendorIdentity)
		sink = gormstore.NewSink(db)
		log.Info("Database connected", zap.String("dsn", cfg.Store.DSN))
	default:
		budgetStore = memory.NewStore(budgeting.BudgetIdentity)
		serviceStore = memory.NewStore(budgeting.ServiceIdentity)
		scheduleStore = memory.NewStore(budgeting.ScheduleIdentity)
		suburbStore = memory.NewStore(budgeting.SuburbIdentity)
		vendorStore = memory.NewStore(budgeting.VendorIdentity)
		sink = memory.NewSink()
	}

	// Wrap every mutating store with audit logging
	user := cfg.Audit.DefaultUser
	maxFields := cfg.Audit.MaxSummaryFields
	stores := budgeting.Stores{
		Budgets: audited.NewStore(budgetStore, sink, log, audited.Config[budget.Budget]{
			EntityType: "budget",
			User:       user,
			Identity:   budgeting.BudgetIdentity,
			Label:      func(b *budget.Budget) string { return b.Label() },
			// lifecycle stamps move together with the status field and
			// must not break the statusChange classification
			StatusField:      "status",
			IgnoreFields:     []string{"approvedAt", "sentAt", "archivedAt"},
			MaxSummaryFields: maxFields,
		}),
		Services: audited.NewStore(serviceStore, sink, log, audited.Config[catalog.Service]{
			EntityType:       "service",
			User:             user,
			Identity:         budgeting.ServiceIdentity,
			Label:            func(s *catalog.Service) string { return s.Name },
			MaxSummaryFields: maxFields,
		}),
		Schedules: audited.NewStore(scheduleStore, sink, log, audited.Config[schedule.Schedule]{
			EntityType:       "schedule",
			User:             user,
			Identity:         budgeting.ScheduleIdentity,
			Label:            func(s *schedule.Schedule) string { return s.Name },
			MaxSummaryFields: maxFields,
		}),
		Suburbs: audited.NewStore(suburbStore, sink, log, audited.Config[catalog.Suburb]{
			EntityType:       "suburb",
			User:             user,
			Identity:         budgeting.SuburbIdentity,
			Label:            func(s *catalog.Suburb) string { return s.Name },
			MaxSummaryFields: maxFields,
		}),
		Vendors: audited.NewStore(vendorStore, sink, log, audited.Config[catalog.Vendor]{
			EntityType:       "vendor",
			User:             user,
			Identity:         budgeting.VendorIdentity,
			Label:            func(v *catalog.Vendor) string { return v.Name },
			MaxSummaryFields: maxFields,
		}),
	}

	// Application services
	budgetService := budgeting.NewBudgetService(stores, log)
	catalogService := budgeting.NewCatalogService(stores, log)
	auditService := budgeting.NewAuditService(sink, cfg.Audit.RecentLimit, log)

	// HTTP handlers
	budgetHandler := handler.NewBudgetHandler(budgetService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(budgetHandler).
		Register(catalogHandler).
		Register(auditHandler).
		Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

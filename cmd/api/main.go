package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/catalog"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/slot-scheduler/internal/db"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/slot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/slot-scheduler/internal/logger"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/routes"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	if !timezone.IsValid(cfg.Timezone) {
		zl.Warn("unknown business timezone, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// STORAGE + AUDIT
	// ======================================================
	var (
		repo   domain.Repository
		sink   audit.Sink
		reader audit.Reader
	)

	if cfg.UsePostgres() {
		db, err := dbpkg.NewDB(cfg, zl)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		repo = infraRepo.NewAppointmentGormRepository(db)
		gormSink := audit.NewGormSink(db)
		sink, reader = gormSink, gormSink
	} else {
		repo = infraRepo.NewAppointmentMemoryRepository(loc)
		memSink := audit.NewMemorySink(zl, 1000)
		sink, reader = memSink, memSink
	}

	dispatcher := audit.NewDispatcher(sink, zl.Named("audit"), 256)
	defer dispatcher.Close()

	// ======================================================
	// CATALOG
	// ======================================================
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	if err := cat.Seed(ctx, repo); err != nil {
		return err
	}
	zl.Info("catalog loaded",
		zap.Int("services", len(cat.Services)),
		zap.Int("working_days", len(cat.WorkingHours)),
	)

	// ======================================================
	// SLOT CACHE
	// ======================================================
	var slotCache cache.SlotCache = cache.Noop{}
	if cfg.UseRedis() {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		client, err := cache.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			zl.Warn("redis unavailable, slot cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer client.Close()
			slotCache = cache.NewRedis(client, cfg.SlotCacheTTL, zl.Named("cache"))
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(zl.Named("access")))

	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Log:         zl,
		Repo:        repo,
		SlotCache:   slotCache,
		Audit:       dispatcher,
		AuditReader: reader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", cfg.StorageDriver),
			zap.String("timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

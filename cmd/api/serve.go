package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "nft-lending-backend/internal/adapter/http"
	"nft-lending-backend/internal/adapter/messaging/kafka"
	"nft-lending-backend/internal/adapter/metrics"
	appmw "nft-lending-backend/internal/adapter/middleware"
	"nft-lending-backend/internal/adapter/repository/mysql"
	"nft-lending-backend/internal/config"
	"nft-lending-backend/internal/infrastructure/cache"
	"nft-lending-backend/internal/infrastructure/db"
	"nft-lending-backend/internal/infrastructure/logging"
	"nft-lending-backend/internal/infrastructure/scheduler"
	"nft-lending-backend/internal/usecase/keeper"
	"nft-lending-backend/internal/usecase/loan"
	"nft-lending-backend/internal/usecase/sandbox"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE:  runServe,
}

var autoMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply the schema before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := mysql.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	m := metrics.New()
	tx := mysql.NewGormUoW(gdb, cfg.Auction())
	loans := loan.NewUsecase(tx, cfg.Custody(), loan.WithLogger(log), loan.WithObserver(m))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs, closeJobs, err := buildJobs(cfg, tx, loans, m, log)
	if err != nil {
		return err
	}
	defer closeJobs()
	jobs.Start(ctx)
	defer jobs.Stop()

	e := newEcho(cfg, gdb, rdb, loans, tx, m, log)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, loans *loan.Usecase, tx *mysql.GormUoW, m *metrics.Metrics, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), m.Middleware())

	routes := httpadp.Routes{
		Health: httpadp.NewHandler(
			httpadp.NamedCheck{Name: "db", Check: func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			httpadp.NamedCheck{Name: "redis", Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}},
		),
		Loans: httpadp.NewLoanHandler(loans, log),
	}
	if cfg.SandboxEnabled {
		routes.Sandbox = httpadp.NewSandboxHandler(sandbox.NewUsecase(tx, log), log)
		log.Warn("sandbox endpoints enabled")
	}

	ttl := time.Duration(cfg.IdempTTLSecs) * time.Second
	httpadp.Register(e, routes, appmw.IdempotencyMiddleware(rdb, ttl, log))
	e.GET("/metrics", m.Handler())
	return e
}

// buildJobs schedules the expiry keeper and the event relay. The returned
// func closes the Kafka writer when one was opened.
func buildJobs(cfg *config.Config, tx *mysql.GormUoW, loans *loan.Usecase, m *metrics.Metrics, log *zap.Logger) (*scheduler.Scheduler, func(), error) {
	s := scheduler.New(log)
	closeFn := func() {}

	if cfg.KeeperSchedule != "" {
		k := keeper.New(loans, cfg.Keeper(), cfg.KeeperBatch, log)
		err := s.Add("keeper", cfg.KeeperSchedule, func(ctx context.Context) error {
			res, err := k.Run(ctx)
			m.Liquidated(len(res.Liquidated))
			return err
		})
		if err != nil {
			return nil, closeFn, err
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		relay := kafka.NewRelay(tx, kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic), cfg.KeeperBatch, log)
		closeFn = func() {
			if err := relay.Close(); err != nil {
				log.Warn("kafka writer close", zap.Error(err))
			}
		}
		err := s.Add("relay", cfg.RelaySchedule, func(ctx context.Context) error {
			n, err := relay.Flush(ctx)
			m.EventsPublished(n)
			return err
		})
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}
	}
	return s, closeFn, nil
}

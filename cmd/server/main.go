package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/rl1809/coffee-maker/internal/adapter/handler"
	"github.com/rl1809/coffee-maker/internal/adapter/handler/rpc"
	"github.com/rl1809/coffee-maker/internal/adapter/storage"
	"github.com/rl1809/coffee-maker/internal/config"
	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/core/service"
	"github.com/rl1809/coffee-maker/internal/logging"
	"github.com/rl1809/coffee-maker/internal/menu"
	"github.com/rl1809/coffee-maker/internal/metrics"
	"github.com/rl1809/coffee-maker/internal/port"
)

func main() {
	bootstrap := zap.Must(zap.NewProduction())

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		bootstrap.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize MySQL
	var ledger port.DatabaseRepository
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			return err
		}
		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.Migrate(ctx); err != nil {
			return err
		}
		ledger = mysqlAdapter
		logger.Info("connected to mysql")
	}

	// Initialize Redis, or keep mirror and idempotency keys in memory
	var cache port.CacheRepository = storage.NewMemoryAdapter()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		cache = storage.NewRedisAdapter(rdb)
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	}

	opts := []service.Option{
		service.WithMachineID(cfg.MachineID),
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithCache(cache),
	}
	if ledger != nil {
		opts = append(opts, service.WithSaleQueue(cfg.QueueSize))
	}
	coffeeMaker := service.NewCoffeeMaker(opts...)

	if cfg.MenuFile != "" {
		recipes, err := menu.LoadFile(cfg.MenuFile)
		if err != nil {
			return err
		}
		for _, r := range recipes {
			if !coffeeMaker.AddRecipe(r) {
				logger.Warn("menu recipe skipped", zap.String("recipe", r.Name()))
			}
		}
		logger.Info("menu loaded", zap.Int("recipes", len(recipes)))
	}

	// Sync stock to the mirror
	coffeeMaker.SyncStock(ctx)

	var workers errgroup.Group
	if ledger != nil {
		for i := 0; i < cfg.WorkerCount; i++ {
			id := i
			workers.Go(func() error {
				workerLoop(id, coffeeMaker.Sales(), ledger, m, logger)
				return nil
			})
		}
		logger.Info("started sale workers", zap.Int("count", cfg.WorkerCount))
	}

	grpcServer := grpc.NewServer()
	rpc.RegisterCoffeeMakerServer(grpcServer, handler.NewGRPCHandler(coffeeMaker))

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: handler.NewRouter(handler.NewHTTPHandler(coffeeMaker, logger), handler.RouterConfig{
			Logger:   logger,
			Metrics:  m,
			Gatherer: reg,
			Limiter:  limiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown", zap.Error(err))
		}
		logger.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		logger.Info("gRPC server stopped")
		return nil
	})

	err := g.Wait()

	// Close sale queue and wait for workers
	coffeeMaker.Close()
	_ = workers.Wait()
	logger.Info("workers stopped")

	return err
}

func workerLoop(id int, queue <-chan domain.Sale, db port.DatabaseRepository, m *metrics.Metrics, logger *zap.Logger) {
	log := logger.With(zap.Int("worker", id))
	for sale := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		err := db.CreateSale(ctx, sale)
		m.ObserveSalePersisted(err)
		switch {
		case errors.Is(err, storage.ErrDuplicateSale):
			log.Warn("sale already recorded", zap.String("sale_id", sale.ID))
		case err != nil:
			log.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		default:
			log.Debug("saved sale", zap.String("sale_id", sale.ID))
		}

		cancel()
	}
}

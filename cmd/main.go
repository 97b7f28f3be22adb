package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wishlink/internal/config"
	"wishlink/internal/handlers"
	"wishlink/internal/logger"
	"wishlink/internal/repository"
	"wishlink/internal/repository/db"
	"wishlink/internal/server"
	"wishlink/internal/service"

	"github.com/go-redis/redis/v8"
)

const redisDialTimeout = 5 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load configs/config.yml once; the struct is read-only after this
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open stores
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer closeDB(sqlDB, log)

	rdb, err := openRedis(cfg)
	if err != nil {
		log.Fatalw("failed to connect to redis", "addr", cfg.Redis.Addr, "err", err)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Errorw("failed to close redis", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB, rdb)
	services := service.NewService(repos, cfg)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func closeDB(sqlDB *sql.DB, log *logger.Logger) {
	if cerr := sqlDB.Close(); cerr != nil {
		log.Errorw("failed to close sqlite", "err", cerr)
	}
}

// openRedis connects the friend-invite token store and fails fast if it is
// unreachable.
func openRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

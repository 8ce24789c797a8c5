package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	custody "custody_wallet_back"
	"custody_wallet_back/pkg/cache"
	"custody_wallet_back/pkg/handler"
	"custody_wallet_back/pkg/platform"
	"custody_wallet_back/pkg/repository"
	"custody_wallet_back/pkg/service"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Info("starting server")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env loaded: %s", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("error reading config: %s", err.Error())
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		logrus.Fatalf("invalid configuration: %s", err.Error())
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		logrus.Fatalf("error connecting to database: %s", err.Error())
	}
	if err := repository.Migrate(ctx, db); err != nil {
		logrus.Fatalf("error migrating database: %s", err.Error())
	}
	logrus.Info("database connected")

	client, err := platform.NewClient(cfg.Platform)
	if err != nil {
		logrus.Fatalf("error creating platform client: %s", err.Error())
	}

	var readCache cache.Cache = cache.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, using in-memory cache")
		} else {
			defer rc.Close()
			readCache = rc
		}
	}

	repos := repository.NewRepository(db)
	services := service.NewService(repos, client, service.Config{
		SeedKey:         cfg.SeedKey,
		MainnetDisabled: cfg.MainnetDisabled,
	}, readCache, cfg.Mail.newNotifier())
	handlers := handler.NewHandler(services, cfg.HTTP)

	srv := new(custody.Server)
	go func() {
		// without an await cap a transfer request may run until the client leaves
		var writeTimeout time.Duration
		if cfg.Platform.AwaitTimeout > 0 {
			writeTimeout = cfg.Platform.AwaitTimeout + time.Minute
		}
		if err := srv.Run(cfg.Port, handlers.InitRoute(), writeTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error running server: %s", err)
		}
	}()
	logrus.WithField("port", cfg.Port).Info("server started")

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error on server shutdown: %s", err.Error())
	}
	if err := db.Close(); err != nil {
		logrus.Errorf("error closing database: %s", err.Error())
	}
}

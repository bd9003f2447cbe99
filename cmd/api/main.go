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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	authsvc "benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/claims"
	coreauth "benefitup/internal/core/auth"
	"benefitup/internal/core/config"
	"benefitup/internal/core/database"
	"benefitup/internal/core/logger"
	"benefitup/internal/core/server"
	"benefitup/internal/store"
	"benefitup/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 存储后端（失败直接 Fatal）
	backend := mustOpenStore(cfg, log)
	log.Info("store ready", zap.String("driver", cfg.Store.Driver))

	// 目录
	cat := newCatalog(cfg, log)

	// JWT
	jwter := &coreauth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 服务
	db := store.NewLocked(backend)
	authSvc := authsvc.NewService(db, backend, jwter, newVerifyPolicy(cfg))
	claimSvc := claims.NewService(db, cat)

	// 路由（用户端）
	r := router.NewAPIEngine(log, router.Deps{
		JWT:     jwter,
		Catalog: cat,
		Auth:    authSvc,
		Claims:  claimSvc,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()
	log.Info("user api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File == "" {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     true,
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

func mustOpenStore(cfg *config.Config, l *zap.Logger) store.Backend {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemStore()
	case "file":
		return store.NewFileStore(cfg.Store.Dir)
	case "redis":
		return store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "gorm":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		})
		if err != nil {
			l.Fatal("db open", zap.Error(err))
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			l.Fatal("store init", zap.Error(err))
		}
		return s
	default:
		l.Fatal("unknown store driver", zap.String("driver", cfg.Store.Driver))
		return nil
	}
}

func newCatalog(cfg *config.Config, l *zap.Logger) *catalog.Service {
	opts := []catalog.Option{}
	if cfg.Catalog.Path != "" {
		deals, err := catalog.LoadDeals(cfg.Catalog.Path)
		if err != nil {
			l.Fatal("load catalog", zap.Error(err))
		}
		opts = append(opts, catalog.WithDeals(deals))
		l.Info("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("deals", len(deals)))
	}
	if cfg.Catalog.DelayMs > 0 {
		opts = append(opts, catalog.WithDelay(time.Duration(cfg.Catalog.DelayMs)*time.Millisecond))
	}
	return catalog.New(opts...)
}

func newVerifyPolicy(cfg *config.Config) authsvc.VerifyPolicy {
	switch cfg.Signup.VerifyMode {
	case "all":
		return authsvc.VerifyAll()
	case "seeded":
		return authsvc.VerifySeeded(cfg.Signup.VerifySeed, cfg.Signup.VerifyRatio)
	default:
		return authsvc.VerifyNone()
	}
}

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
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 与用户端共用同一个存储（同一目录 / 同一 Redis / 同一库）
	backend := mustOpenStore(cfg, log)
	log.Info("store ready", zap.String("driver", cfg.Store.Driver))

	jwter := &coreauth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	db := store.NewLocked(backend)
	cat := catalog.New()
	authSvc := authsvc.NewService(db, backend, jwter, nil)
	claimSvc := claims.NewService(db, cat)

	// 路由（管理端，只读）
	r := router.NewAdminEngine(log, router.Deps{
		JWT:     jwter,
		Catalog: cat,
		Auth:    authSvc,
		Claims:  claimSvc,
	})

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
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

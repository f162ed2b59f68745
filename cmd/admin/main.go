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
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/core/config"
	"github.com/kairowan/gatehouse/internal/core/database"
	"github.com/kairowan/gatehouse/internal/core/logger"
	"github.com/kairowan/gatehouse/internal/core/server"
	"github.com/kairowan/gatehouse/internal/repo"
	"github.com/kairowan/gatehouse/internal/service"
	"github.com/kairowan/gatehouse/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	audit := collab.NewZapAudit(log.Named("audit"), cfg.Audit.QueueSize)
	defer audit.Close()

	fs := afero.NewOsFs()
	relayTimeout := time.Duration(cfg.Relay.TimeoutMS) * time.Millisecond

	deps := router.AdminDeps{
		Authz:    service.NewAuthzService(repo.NewTokenRepo(db)),
		Users:    repo.NewUserRepo(db),
		Exporter: service.NewExporter(db),
		Relay:    service.NewRelay(cfg.Relay.Targets, collab.NewOutboundFetch(relayTimeout), relayTimeout, audit),
		Backup:   collab.NewBackupRunner(fs, cfg.Backup.SourcePath, cfg.Backup.Dir),
		Mailer:   &collab.LogMailer{Log: log.Named("mail"), Sender: cfg.Mail.Sender},
		Audit:    audit,
	}

	r := router.NewAdminEngine(log, db, deps)

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

	// 异步启动；失败立即退出
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

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
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
	return db
}

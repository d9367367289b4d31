// Package app 组装两个入口共用的依赖：存储、缓存、服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"padel-ranking-api/internal/core/auth"
	"padel-ranking-api/internal/core/cache"
	"padel-ranking-api/internal/core/config"
	"padel-ranking-api/internal/core/database"
	"padel-ranking-api/internal/repo"
	"padel-ranking-api/internal/service"
)

type App struct {
	Cfg     *config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	Cache   *cache.Cache // redis.addr 为空时为 nil
	JWT     *auth.JWTer
	Metrics *prometheus.Registry

	Users   *service.UserService
	Auth    *service.AuthService
	Matches *service.MatchService
	Ranking *service.RankingService
}

// New 打开数据库（按配置迁移）、连接可选的 redis 并构建服务
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             zap.NewStdLog(l.Named("gorm")),
		Log:                l.Named("db"),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	c := openCache(ctx, cfg.Redis, l)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	userRepo := repo.NewUserRepo(db)
	return &App{
		Cfg:     cfg,
		Log:     l,
		DB:      db,
		Cache:   c,
		JWT:     jwter,
		Metrics: reg,
		Users:   service.NewUserService(userRepo, c, time.Duration(cfg.Redis.UserTTLSec)*time.Second, l),
		Auth:    service.NewAuthService(userRepo, jwter, metrics, l),
		Matches: service.NewMatchService(repo.NewMatchRepo(db), metrics, l),
		Ranking: service.NewRankingService(repo.NewRankingRepo(db), userRepo),
	}, nil
}

// openCache redis 连不上时只告警，服务以无缓存模式运行
func openCache(ctx context.Context, rc config.Redis, l *zap.Logger) *cache.Cache {
	if rc.Addr == "" {
		return nil
	}
	c := cache.New(rc.Addr, rc.Password, rc.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		l.Warn("redis unavailable, user cache disabled", zap.String("addr", rc.Addr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	l.Info("redis connected", zap.String("addr", rc.Addr))
	return c
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		a.Log.Warn("redis close", zap.Error(err))
	}
	if err := database.Close(a.DB); err != nil {
		a.Log.Warn("db close", zap.Error(err))
	}
}

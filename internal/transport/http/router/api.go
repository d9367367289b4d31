package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"padel-ranking-api/internal/core/auth"
	"padel-ranking-api/internal/core/config"
	"padel-ranking-api/internal/core/server"
	"padel-ranking-api/internal/transport/http/ez"
	mdw "padel-ranking-api/internal/transport/http/middleware"
	resp "padel-ranking-api/internal/transport/http/response"
)

type Deps struct {
	Log        *zap.Logger
	JWT        *auth.JWTer
	Limits     config.Limits
	Production bool
	Metrics    *prometheus.Registry
	// Ping 健康检查探测存储，可为 nil
	Ping    func(ctx context.Context) error
	Modules *Registry
}

// 零值限额会把请求全部拒掉，这里补上与配置一致的默认值
func withDefaults(l config.Limits) config.Limits {
	if l.RPS <= 0 {
		l.RPS, l.Burst = 200, 400
	}
	if l.PerIPRPS <= 0 {
		l.PerIPRPS, l.PerIPBurst = 20, 40
	}
	l.Burst = max(1, l.Burst)
	l.PerIPBurst = max(1, l.PerIPBurst)
	if l.MaxConcurrent <= 0 {
		l.MaxConcurrent = 300
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = 1 << 20
	}
	if l.RequestTimeSec <= 0 {
		l.RequestTimeSec = 10
	}
	return l
}

func NewAPIEngine(d Deps) *gin.Engine {
	lim := withDefaults(d.Limits)
	if d.Metrics == nil {
		d.Metrics = prometheus.NewRegistry()
	}
	r := server.NewRouter(d.Log, lim.CORSOrigins)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.RequestTimeSec)*time.Second),
		mdw.Recovery(d.Log),
		mdw.Metrics(d.Metrics),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				d.Log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, resp.Error(resp.CodeUnavailable, "database unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1}))
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "route not found"))
	})

	// 前缀
	api := ez.New(r.Group("/api"), d.Log, d.Production)
	// 鉴权分组
	authed := api.Group("", mdw.AuthJWT(d.JWT))

	if d.Modules != nil {
		d.Modules.MountAll(api, authed)
	}
	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"business-directory/internal/core/server"
	mdw "business-directory/internal/transport/http/middleware"
	resp "business-directory/internal/transport/http/response"
)

type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitPerIP bool
	MaxConcurrent  int64
	CORSOrigins    []string
}

func DefaultOptions() Options {
	return Options{
		RequestTimeout: 10 * time.Second,
		MaxBodyBytes:   1 << 20,
		RateLimitRPS:   200,
		RateLimitBurst: 400,
		MaxConcurrent:  300,
		CORSOrigins:    []string{"*"},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = d.RequestTimeout
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = d.MaxBodyBytes
	}
	if o.RateLimitRPS <= 0 {
		o.RateLimitRPS = d.RateLimitRPS
	}
	if o.RateLimitBurst <= 0 {
		o.RateLimitBurst = d.RateLimitBurst
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = d.MaxConcurrent
	}
	return o
}

func NewAPIEngine(l *zap.Logger, o Options, mods ...APIModule) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(o.CORSOrigins)

	limiter := mdw.RateLimit(rate.Limit(o.RateLimitRPS), o.RateLimitBurst)
	if o.RateLimitPerIP {
		limiter = mdw.RateLimitPerIP(rate.Limit(o.RateLimitRPS), o.RateLimitBurst)
	}

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		limiter,
		mdw.ConcurrencyLimit(o.MaxConcurrent),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Recovery(l),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 健康检查
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.Envelope{Success: true, Message: resp.MsgServerRunning})
	})

	MountAll(api, mods...)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.MsgRouteNotFound))
	})
	return r
}

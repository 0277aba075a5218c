package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sumeeth742/university/config"
	"github.com/sumeeth742/university/internal/api/handler"
	"github.com/sumeeth742/university/internal/api/middleware"
	"github.com/sumeeth742/university/internal/metrics"
	"github.com/sumeeth742/university/internal/model"
	"github.com/sumeeth742/university/pkg/jwt"
	"github.com/sumeeth742/university/pkg/redis"
)

// maxBodyBytes bounds one upload. A full marks sheet for a batch stays
// well under this.
const maxBodyBytes = 10 << 20

// loginRateLimit and loginRateWindow throttle credential guessing per
// client IP.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup wires middleware and all routes.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	collector *metrics.Collector,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Metrics(collector))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, loginRateLimit, loginRateWindow),
				h.Auth.Login)

			authed := auth.Group("", middleware.JWTAuth(jwtMgr, rdb))
			{
				authed.POST("/logout", h.Auth.Logout)
				authed.GET("/users", middleware.RoleAuth(model.RoleAdmin), h.Auth.ListUsers)
			}
		}

		results := api.Group("/results", middleware.JWTAuth(jwtMgr, rdb))
		{
			// ownership is checked in the handler so admins can read any USN
			results.GET("/:usn", h.Result.GetResults)

			admin := results.Group("", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("/bulk", h.Result.BulkIngest)
				admin.POST("/bulk-file", h.Result.BulkIngestFile)
				admin.DELETE("/delete-any", h.Result.DeleteAny)
			}
		}
	}

	return r
}

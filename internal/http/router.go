package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admitpath/internal/service"
)

// PingFunc chequea una dependencia. nil significa "no configurada".
type PingFunc func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	predictionH *PredictionHandler,
	registry *prometheus.Registry,
	dbPing, cachePing PingFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", healthHandler(dbPing, cachePing))
	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1", JWTAuthMiddleware(jwtSvc))
	v1.POST("/predictions", predictionH.Predict)
	v1.DELETE("/predictions/:profileID", predictionH.InvalidateProfile)

	return r
}

// healthHandler hace ping real a las dependencias. La base caída deja el
// servicio fuera (503); el cache caído solo degrada performance, así que se
// reporta pero la respuesta sigue siendo 200.
func healthHandler(dbPing, cachePing PingFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok"}
		code := http.StatusOK

		if dbPing != nil {
			if err := dbPing(ctx); err != nil {
				status["status"] = "unavailable"
				status["db"] = "down"
				code = http.StatusServiceUnavailable
			} else {
				status["db"] = "ok"
			}
		}
		if cachePing != nil {
			if err := cachePing(ctx); err != nil {
				status["cache"] = "down"
			} else {
				status["cache"] = "ok"
			}
		}

		c.JSON(code, status)
	}
}

// requestIDMiddleware asigna un id de correlación a cada request.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("user_id", c.GetString(authUserKey)),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

package server

import (
	"net/http"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/version"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the search websocket, metrics and health endpoints
func NewRouter(wsPath string, search http.Handler, log *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET(wsPath, gin.WrapH(search))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version.Version,
		})
	})

	return router
}

// New creates the HTTP server for the router
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// requestLogger logs each request through logrus
func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(began),
		})

		// Websocket requests stay open for the whole search
		if c.Request.URL.Path == "/metrics" || c.Request.URL.Path == "/healthz" {
			entry.Debug("Request served")
			return
		}
		entry.Info("Request served")
	}
}

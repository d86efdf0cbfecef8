package apihandlers

import (
	"io"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UseLogOutput points gin's own debug and recovery output at w. Call it before
// NewRouter.
func UseLogOutput(w io.Writer) {
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
}

// NewRouter builds the HTTP API. The gin mode is set by the caller.
func NewRouter(h *APIHandler) *gin.Engine {
	cfg := h.App.Config

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 0 || containsWildcard(cfg.Server.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.HealthHandler)

	api := router.Group("/api")
	{
		tweets := api.Group("")
		if cfg.Server.RequireSubscription {
			tweets.Use(RequireSubscription())
		}
		tweets.POST("/tweets", h.TweetsHandler)

		api.POST("/subscribe", h.SubscribeHandler)
		api.POST("/newsletter", h.SubscribeHandler)
		api.POST("/fetch-react-tweet", h.FetchReactTweetHandler)
	}
	return router
}

// RequireSubscription rejects requests without the newsletter cookie.
func RequireSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(SubscribedCookie); err != nil || v != subscribedValue {
			Forbidden(c, "Subscribe to the newsletter to search")
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Round(time.Millisecond),
			"client":  c.ClientIP(),
		}).Info("request")
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

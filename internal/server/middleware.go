package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SkipWarningHeader is the header tunnel clients send to bypass the interstitial.
const SkipWarningHeader = "ngrok-skip-browser-warning"

const interstitialPage = `<!DOCTYPE html>
<html>
<head><title>You are about to visit a tunneled site</title></head>
<body>
<h1>You are about to visit a tunneled site</h1>
<p>Set the ngrok-skip-browser-warning request header to bypass this page.</p>
</body>
</html>`

func tunnelInterstitial() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader(SkipWarningHeader)) != "" {
			c.Next()
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(interstitialPage))
		c.Abort()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

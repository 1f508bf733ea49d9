package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const msgNotAuthorized = "Not authorized"

// authGate admits requests carrying a valid bearer token and stores the
// caller's identity in the request context. Every failure looks the same
// to the caller; the reason is only logged at debug level.
func authGate(secret []byte, logger logging.Logger) gin.HandlerFunc {
	reject := func(c *gin.Context, reason string) {
		logger.Debug(c.Request.Context(), "Request rejected by auth gate", "reason", reason, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNotAuthorized})
	}
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader(common.AuthorizationHeaderName), common.BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			reject(c, "missing bearer token")
			return
		}
		id, err := auth.ParseToken(token, secret)
		if err != nil {
			if auth.IsExpired(err) {
				reject(c, "token expired")
			} else {
				reject(c, "invalid token")
			}
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// userID returns the identity set by authGate. Handlers are only mounted
// behind the gate, so a missing identity is a wiring bug.
func userID(c *gin.Context) string {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		panic("rest: handler mounted without auth gate")
	}
	return id.ID
}

// observe logs every request and feeds the HTTP metrics. Routes are labelled
// by their pattern, not the raw path, to keep label cardinality bounded.
func (h *Handler) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		if h.metrics != nil {
			h.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), elapsed.Seconds())
		}
		h.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
		)
	}
}

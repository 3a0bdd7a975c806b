package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/logging"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// requestLogger logs the route pattern rather than the raw path so share
// tokens stay out of the logs.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// cors lets the web client call the API with credentials. Other origins get
// no CORS headers at all.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == s.allowedOrigin {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requireAuth accepts "Authorization: Bearer <jwt>". A missing token is 401;
// a bad or expired one is 403 so the client knows to call /auth/refresh.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized, no token provided"})
			return
		}

		userID, err := s.svc.Users.AuthenticatedUserID(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden, token expired or invalid"})
			return
		}

		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "user", userID))
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

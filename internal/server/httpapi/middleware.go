package httpapi

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/gin-gonic/gin"
)

const callerKey = "callerID"

func callerID(c *gin.Context) string {
	return c.GetString(callerKey)
}

// requireSession aborts with 401 unless X-Token names a live session.
func (s *Server) requireSession(c *gin.Context) {
	id, err := s.auth.ResolveSession(c.Request.Context(), c.GetHeader(common.TokenHeaderName))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Set(callerKey, id)
	c.Next()
}

// optionalSession resolves the caller when a valid token is supplied and
// lets anonymous callers through otherwise.
func (s *Server) optionalSession(c *gin.Context) {
	token := c.GetHeader(common.TokenHeaderName)
	if token == "" {
		c.Next()
		return
	}

	id, err := s.auth.ResolveSession(c.Request.Context(), token)
	switch {
	case err == nil:
		c.Set(callerKey, id)
	case !errors.Is(err, common.ErrUnauthenticated):
		s.abort(c, err)
		return
	}
	c.Next()
}

func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

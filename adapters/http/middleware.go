package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/auth"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const (
	GinContextKeySessionID = "sessionID"
)

type SessionCookie struct {
	Name   string
	Secure bool
}

// SessionMiddleware resolves the caller's session from the signed cookie.
// A missing, expired or forged cookie starts a fresh session, the way a new
// browser tab starts with empty storage.
func SessionMiddleware(jwtSvc *auth.JWTService, cookie SessionCookie, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookie.Name); err == nil && token != "" {
			claims, err := jwtSvc.ValidateToken(token)
			if err == nil {
				if jwtSvc.NeedsRefresh(claims) && !issueSessionCookie(c, jwtSvc, cookie, claims.SessionID) {
					return
				}
				c.Set(GinContextKeySessionID, claims.SessionID)
				c.Next()
				return
			}
			log.Warn("Discarding invalid session cookie", zap.Error(err))
		}

		sessionID := uuid.New()
		if !issueSessionCookie(c, jwtSvc, cookie, sessionID) {
			return
		}
		c.Set(GinContextKeySessionID, sessionID)
		c.Next()
	}
}

// issueSessionCookie sets a browser-session cookie (no Max-Age) for
// sessionID. It aborts the request and returns false on failure.
func issueSessionCookie(c *gin.Context, jwtSvc *auth.JWTService, cookie SessionCookie, sessionID uuid.UUID) bool {
	token, err := jwtSvc.GenerateToken(sessionID)
	if err != nil {
		c.Error(apperror.NewInternal("failed to start session", err))
		c.Abort()
		return false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, 0, "/", "", cookie.Secure, true)
	return true
}

func GetSessionIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	sessionID, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := sessionID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return id, true
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", appErr, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.String("details", appErr.Details))...)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
		}
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"briefy/internal/logger"
)

// LocalOwner owns every project when the API runs without a JWT secret.
const LocalOwner = "local"

const ownerKey = "briefy.owner"

func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if owner := c.GetString(ownerKey); owner != "" {
			fields = append(fields, "owner", owner)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// RequireAuth validates an HS256 bearer token (Supabase access tokens are
// signed this way) and stores its subject as the request owner. With an
// empty secret every request runs as LocalOwner.
func RequireAuth(secret string, log *logger.Logger) gin.HandlerFunc {
	if strings.TrimSpace(secret) == "" {
		return func(c *gin.Context) {
			c.Set(ownerKey, LocalOwner)
			c.Next()
		}
	}
	key := []byte(secret)
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			log.Debug("rejected token", "error", err)
			RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		if strings.TrimSpace(claims.Subject) == "" {
			RespondError(c, http.StatusForbidden, "forbidden", errors.New("token has no subject"))
			return
		}
		c.Set(ownerKey, claims.Subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return c.Query("token")
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDContextKey - ключ, под которым middleware кладет ID пользователя
// в контекст gin.
const userIDContextKey = "userID"

// userClaims - клеймы токена пользователя.
type userClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет Bearer-токен и кладет ID пользователя в контекст.
func AuthMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Missing Authorization header"})
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid Authorization header format"})
			return
		}

		claims := &userClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Debug("Token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid or expired token"})
			return
		}
		if claims.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid token claims"})
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Next()
	}
}

// getUserIDFromContext извлекает ID пользователя, положенный AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (int64, bool) {
	val, exists := c.Get(userIDContextKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
		return 0, false
	}
	userID, ok := val.(int64)
	if !ok || userID <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ZapLoggingMiddleware логирует запросы с помощью zap.
// Healthcheck и metrics не логируются, чтобы не засорять вывод.
func ZapLoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		c.Next()

		latency := time.Since(start)
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		requestID := c.Writer.Header().Get("X-Request-ID")
		if requestID == "" {
			requestID = c.GetHeader("X-Request-ID")
		}
		if requestID == "" {
			requestID = uuid.NewString()
			c.Header("X-Request-ID", requestID)
		}
		fields = append(fields, zap.String("request_id", requestID))

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("HTTP request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

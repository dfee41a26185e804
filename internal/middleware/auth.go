package middleware

import (
	"strings"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/auth"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// ActorMiddleware извлекает userID из необязательного Bearer-токена.
// Авторизацией занимается внешний сервис: без токена или с невалидным
// токеном запрос выполняется анонимно, поля аудита остаются пустыми.
func ActorMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if jwtSecret == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Ignoring invalid bearer token", "error", err)
			c.Next()
			return
		}

		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetUserID - ID автора изменений или "" для анонимного запроса
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

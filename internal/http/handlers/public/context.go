package public

import (
	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getSessionKey 读取中间件写入的购物车会话键
func getSessionKey(c *gin.Context) (string, bool) {
	value, ok := c.Get("session_key")
	if !ok {
		return "", false
	}
	key, ok := value.(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func requireSessionKey(c *gin.Context) (string, bool) {
	key, ok := getSessionKey(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "session token missing", nil)
		return "", false
	}
	return key, true
}

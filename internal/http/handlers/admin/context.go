package admin

import (
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// getActor 读取鉴权中间件写入的员工身份
func getActor(c *gin.Context) (service.Actor, bool) {
	value, exists := c.Get("staff_actor")
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return service.Actor{}, false
	}
	actor, ok := value.(service.Actor)
	if !ok {
		respondError(c, response.CodeInternal, "actor context invalid", nil)
		return service.Actor{}, false
	}
	return actor, true
}

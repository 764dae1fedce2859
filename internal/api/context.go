package api

import "github.com/gin-gonic/gin"

// userIDFromContext 读取认证中间件注入的用户 ID。
func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

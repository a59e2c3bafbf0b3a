package httpx

import (
	"github.com/Gunvolt24/telecom_cart/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// CartIDMiddleware — кладёт параметр маршрута в контекст запроса для логов.
// Вешается на группу маршрутов, где параметр есть.
func CartIDMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param(param); id != "" {
			c.Request = c.Request.WithContext(ctxmeta.WithCartID(c.Request.Context(), id))
		}
		c.Next()
	}
}

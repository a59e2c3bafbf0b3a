package httpx

import "github.com/gin-gonic/gin"

// ErrorBody — единый формат ответа с ошибкой.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AbortError — ответ с ошибкой и прерывание цепочки middleware.
func AbortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: code})
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 平台约定：HTTP 状态码恒为 200，业务成败由 success 标志表达
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "",
		Data:    data,
	})
}

// SuccessWithMessage 带提示消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 失败响应，message 原样透传给操作员
func Error(c *gin.Context, message string) {
	if message == "" {
		message = "操作失败"
	}
	c.JSON(http.StatusOK, Response{
		Success: false,
		Message: message,
	})
}

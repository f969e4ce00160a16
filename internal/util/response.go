package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码，与 HTTP 状态码保持一致
const (
	CodeOK            = 200
	CodeInvalidParam  = 400
	CodeAuth          = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeUnprocessable = 422
	CodeServerErr     = 500
)

// Success 统一成功返回
// 所有接口的返回都包一层 {success, code, message, data}
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"code":    CodeOK,
		"message": nil,
		"data":    data,
	})
}

// Error 统一错误返回，message 只放脱敏后的提示，不暴露内部错误
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/zempo1/bookKeeper/internal/service"
	"github.com/zempo1/bookKeeper/internal/util"

	"github.com/gin-gonic/gin"
)

// writeDomainError 把领域错误翻译成统一的响应码。
// 未识别的错误按服务器内部错误处理，细节只进日志不出接口。
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusUnprocessableEntity, util.CodeUnprocessable, err.Error())
	case errors.Is(err, service.ErrDateRange):
		util.Error(c, http.StatusUnprocessableEntity, util.CodeUnprocessable, service.ErrDateRange.Error())
	case errors.Is(err, service.ErrForeignKey):
		util.Error(c, http.StatusUnprocessableEntity, util.CodeUnprocessable, service.ErrForeignKey.Error())
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, service.ErrNotFound.Error())
	case errors.Is(err, service.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, service.ErrForbidden.Error())
	default:
		log.Printf("internal error (rid=%s): %v", c.GetString("requestID"), err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "服务器开小差了，请稍后重试")
	}
}

// parseUintParam 解析路径或查询参数里的正整数 ID
func parseUintParam(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

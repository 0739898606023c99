package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 根据错误类型选择状态码：文章不存在为 404，其余为 500。
// 500 错误只记录日志，不把细节返回给客户端。
func Error(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrArticleNotFound) {
		Fail(c, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("[API] %s %s: %s: %v", c.Request.Method, c.Request.URL.Path, message, err)
	Fail(c, http.StatusInternalServerError, message)
}

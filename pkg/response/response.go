package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构：{"success": bool, "message": string}
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{Success: false, Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not Found")
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests, please try again later.")
}

// InternalError 500，不暴露内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error.")
}

// Redirect 302 跳转
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

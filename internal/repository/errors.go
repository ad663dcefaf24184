package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"linkshort-go/internal/apperrors"
)

// Postgres SQLSTATE
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// classifyDBError 把底层驱动错误翻译成带分类的 AppError：
//   - 外键冲突 → KindIntegrity（调用方错误，不应重试）
//   - 唯一键冲突 → KindConflict
//   - 超时/连接失败 → KindUnavailable（可退避重试）
//
// 其余错误原样包一层系统错误，不做掩盖。
func classifyDBError(op string, err error) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return apperrors.IntegrityError(op+": referenced link does not exist", err)
		case pgUniqueViolation:
			return apperrors.ConflictError(op+": duplicate key", err)
		}
	}

	// sqlite（测试环境）没有 SQLSTATE，按错误文本识别
	msg := err.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return apperrors.IntegrityError(op+": referenced link does not exist", err)
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return apperrors.ConflictError(op+": duplicate key", err)
	}

	if isUnavailable(err) {
		return apperrors.UnavailableError(op+": storage unavailable", err)
	}

	return &apperrors.AppError{
		Code:    500,
		Kind:    apperrors.KindBusiness,
		Message: op + " failed",
		Cause:   err,
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

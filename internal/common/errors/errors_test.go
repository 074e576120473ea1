// Package errors 错误定义和错误处理单元测试
package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== AppError 基础测试 ====================

func TestNew(t *testing.T) {
	err := New(http.StatusUnprocessableEntity, "参数错误")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "参数错误", err.Message)
	assert.Nil(t, err.Err)
}

func TestWrap(t *testing.T) {
	originalErr := stderrors.New("database connection failed")
	err := Wrap(http.StatusInternalServerError, "数据库错误", originalErr)

	require.NotNil(t, err)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "数据库错误", err.Message)
	assert.Equal(t, originalErr, err.Err)
}

// ==================== AppError 方法测试 ====================

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		want     string
	}{
		{
			name:     "Error without underlying error",
			appError: New(422, "参数错误"),
			want:     "[422] 参数错误",
		},
		{
			name:     "Error with underlying error",
			appError: Wrap(500, "数据库错误", stderrors.New("connection timeout")),
			want:     "[500] 数据库错误: connection timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Error()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := stderrors.New("original error")
	err := Wrap(500, "wrapped error", originalErr)

	unwrapped := err.Unwrap()
	assert.Equal(t, originalErr, unwrapped)
}

func TestAppError_WithMessage(t *testing.T) {
	original := New(422, "原始消息")
	modified := original.WithMessage("修改后的消息")

	assert.Equal(t, 422, modified.Status)
	assert.Equal(t, "修改后的消息", modified.Message)
	assert.Nil(t, modified.Err)

	// 验证原始错误未被修改
	assert.Equal(t, "原始消息", original.Message)
}

func TestAppError_WithMessagef(t *testing.T) {
	original := New(422, "原始消息")
	modified := original.WithMessagef("房间 %d 不可用", 42)

	assert.Equal(t, 422, modified.Status)
	assert.Equal(t, "房间 42 不可用", modified.Message)

	// 验证原始错误未被修改
	assert.Equal(t, "原始消息", original.Message)
}

func TestAppError_WithError(t *testing.T) {
	original := New(422, "参数错误")
	underlyingErr := stderrors.New("validation failed")
	modified := original.WithError(underlyingErr)

	assert.Equal(t, 422, modified.Status)
	assert.Equal(t, "参数错误", modified.Message)
	assert.Equal(t, underlyingErr, modified.Err)

	// 验证原始错误未被修改
	assert.Nil(t, original.Err)
}

// ==================== 错误常量测试 ====================

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrUnknown", ErrUnknown, http.StatusInternalServerError},
		{"ErrInvalidParams", ErrInvalidParams, http.StatusUnprocessableEntity},
		{"ErrNotFound", ErrNotFound, http.StatusNotFound},
		{"ErrDatabaseError", ErrDatabaseError, http.StatusInternalServerError},
		{"ErrCacheError", ErrCacheError, http.StatusInternalServerError},
		{"ErrInternalError", ErrInternalError, http.StatusInternalServerError},
		{"ErrExternalService", ErrExternalService, http.StatusInternalServerError},
		{"ErrRateLimitExceed", ErrRateLimitExceed, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestHotelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrHotelNotFound", ErrHotelNotFound, http.StatusNotFound},
		{"ErrHotelTaxIDTaken", ErrHotelTaxIDTaken, http.StatusUnprocessableEntity},
		{"ErrHotelHasRooms", ErrHotelHasRooms, http.StatusUnprocessableEntity},
		{"ErrHotelDisabled", ErrHotelDisabled, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestRoomErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrRoomNotFound", ErrRoomNotFound, http.StatusNotFound},
		{"ErrRoomNumberTaken", ErrRoomNumberTaken, http.StatusUnprocessableEntity},
		{"ErrRoomTypeDuplicated", ErrRoomTypeDuplicated, http.StatusUnprocessableEntity},
		{"ErrRoomNotAvailable", ErrRoomNotAvailable, http.StatusUnprocessableEntity},
		{"ErrRoomHasReservations", ErrRoomHasReservations, http.StatusUnprocessableEntity},
		{"ErrRoomCapacityInvalid", ErrRoomCapacityInvalid, http.StatusUnprocessableEntity},
		{"ErrRoomLimitExceed", ErrRoomLimitExceed, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestGuestErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrGuestNotFound", ErrGuestNotFound, http.StatusNotFound},
		{"ErrGuestDocumentTaken", ErrGuestDocumentTaken, http.StatusUnprocessableEntity},
		{"ErrGuestUnderage", ErrGuestUnderage, http.StatusUnprocessableEntity},
		{"ErrGuestHasReservations", ErrGuestHasReservations, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestReservationErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrReservationNotFound", ErrReservationNotFound, http.StatusNotFound},
		{"ErrDateConflict", ErrDateConflict, http.StatusUnprocessableEntity},
		{"ErrDateRangeInvalid", ErrDateRangeInvalid, http.StatusUnprocessableEntity},
		{"ErrCapacityExceeded", ErrCapacityExceeded, http.StatusUnprocessableEntity},
		{"ErrGuestCountInvalid", ErrGuestCountInvalid, http.StatusUnprocessableEntity},
		{"ErrAlreadyConfirmed", ErrAlreadyConfirmed, http.StatusUnprocessableEntity},
		{"ErrAlreadyCancelled", ErrAlreadyCancelled, http.StatusUnprocessableEntity},
		{"ErrCancelledImmutable", ErrCancelledImmutable, http.StatusUnprocessableEntity},
		{"ErrConfirmedLocked", ErrConfirmedLocked, http.StatusUnprocessableEntity},
		{"ErrReservationNotOwned", ErrReservationNotOwned, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestSmsErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"ErrSmsSendFail", ErrSmsSendFail, http.StatusInternalServerError},
		{"ErrSmsSendTooFast", ErrSmsSendTooFast, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

// ==================== 辅助函数测试 ====================

func TestIsAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"AppError", ErrUnknown, true},
		{"AppError created by New", New(422, "test"), true},
		{"Standard error", stderrors.New("standard error"), false},
		{"Nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAppError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("From AppError", func(t *testing.T) {
		original := ErrInvalidParams
		got := GetAppError(original)
		assert.Equal(t, original, got)
	})

	t.Run("From standard error", func(t *testing.T) {
		standardErr := stderrors.New("standard error")
		got := GetAppError(standardErr)

		assert.Equal(t, ErrUnknown.Status, got.Status)
		assert.Equal(t, standardErr, got.Err)
	})

	t.Run("Preserves underlying error", func(t *testing.T) {
		underlyingErr := stderrors.New("database failed")
		appErr := Wrap(500, "数据库错误", underlyingErr)

		got := GetAppError(appErr)
		assert.Equal(t, appErr, got)
	})
}

// ==================== 错误链测试 ====================

func TestErrorChaining(t *testing.T) {
	// 创建错误链
	originalErr := stderrors.New("connection timeout")
	wrappedErr := Wrap(500, "数据库错误", originalErr)

	// 验证可以使用 errors.Is 和 errors.As
	unwrapped := wrappedErr.Unwrap()
	assert.Equal(t, originalErr, unwrapped)

	// 验证错误消息包含原始错误
	assert.Contains(t, wrappedErr.Error(), "connection timeout")
	assert.Contains(t, wrappedErr.Error(), "数据库错误")
	assert.Contains(t, wrappedErr.Error(), "500")
}

// ==================== 边界条件测试 ====================

func TestAppError_EmptyMessage(t *testing.T) {
	err := New(599, "")
	assert.Equal(t, 599, err.Status)
	assert.Equal(t, "", err.Message)
	assert.Equal(t, "[599] ", err.Error())
}

func TestAppError_ZeroStatus(t *testing.T) {
	err := New(0, "零状态码错误")
	assert.Equal(t, 0, err.Status)
	assert.Equal(t, "零状态码错误", err.Message)
}

// ==================== 修改链测试 ====================

func TestAppError_ChainedModifications(t *testing.T) {
	original := New(422, "原始错误")

	// 链式修改
	modified := original.
		WithMessage("修改后的消息").
		WithError(stderrors.New("底层错误"))

	assert.Equal(t, 422, modified.Status)
	assert.Equal(t, "修改后的消息", modified.Message)
	assert.NotNil(t, modified.Err)

	// 验证原始错误未被修改
	assert.Equal(t, "原始错误", original.Message)
	assert.Nil(t, original.Err)
}

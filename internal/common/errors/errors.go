// Package errors 定义业务错误和错误处理
package errors

import (
	"fmt"
	"net/http"
)

// AppError 应用错误，携带对应的 HTTP 状态码
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Status:  e.Status,
		Message: message,
		Err:     e.Err,
	}
}

// WithMessagef 格式化修改错误消息
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Status:  e.Status,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误
var (
	ErrUnknown         = New(http.StatusInternalServerError, "未知错误")
	ErrInvalidParams   = New(http.StatusUnprocessableEntity, "参数错误")
	ErrNotFound        = New(http.StatusNotFound, "资源不存在")
	ErrDatabaseError   = New(http.StatusInternalServerError, "数据库错误")
	ErrCacheError      = New(http.StatusInternalServerError, "缓存错误")
	ErrInternalError   = New(http.StatusInternalServerError, "内部错误")
	ErrExternalService = New(http.StatusInternalServerError, "外部服务错误")
	ErrRateLimitExceed = New(http.StatusTooManyRequests, "请求过于频繁")
)

// 酒店错误
var (
	ErrHotelNotFound   = New(http.StatusNotFound, "酒店不存在")
	ErrHotelTaxIDTaken = New(http.StatusUnprocessableEntity, "税号已被其他酒店使用")
	ErrHotelHasRooms   = New(http.StatusUnprocessableEntity, "酒店下存在房间，无法删除")
	ErrHotelDisabled   = New(http.StatusUnprocessableEntity, "酒店已停用")
)

// 房间错误
var (
	ErrRoomNotFound        = New(http.StatusNotFound, "房间不存在")
	ErrRoomNumberTaken     = New(http.StatusUnprocessableEntity, "同一酒店内房间号已存在")
	ErrRoomTypeDuplicated  = New(http.StatusUnprocessableEntity, "同一酒店内已存在相同类型与容纳人数的房间")
	ErrRoomNotAvailable    = New(http.StatusUnprocessableEntity, "房间当前不可预订")
	ErrRoomHasReservations = New(http.StatusUnprocessableEntity, "房间存在有效预订，无法删除")
	ErrRoomCapacityInvalid = New(http.StatusUnprocessableEntity, "房间容纳人数与房型不匹配")
	ErrRoomLimitExceed     = New(http.StatusUnprocessableEntity, "酒店房间数量已达上限")
)

// 客人错误
var (
	ErrGuestNotFound        = New(http.StatusNotFound, "客人不存在")
	ErrGuestDocumentTaken   = New(http.StatusUnprocessableEntity, "证件号码已被登记")
	ErrGuestUnderage        = New(http.StatusUnprocessableEntity, "客人未满18周岁")
	ErrGuestHasReservations = New(http.StatusUnprocessableEntity, "客人存在预订记录，无法删除")
)

// 预订错误
var (
	ErrReservationNotFound  = New(http.StatusNotFound, "预订不存在")
	ErrDateConflict         = New(http.StatusUnprocessableEntity, "所选日期与已有预订冲突")
	ErrDateRangeInvalid     = New(http.StatusUnprocessableEntity, "退房日期必须晚于入住日期")
	ErrCapacityExceeded     = New(http.StatusUnprocessableEntity, "入住人数超过房间容纳上限")
	ErrGuestCountInvalid    = New(http.StatusUnprocessableEntity, "入住人数无效")
	ErrAlreadyConfirmed     = New(http.StatusUnprocessableEntity, "预订已是确认状态")
	ErrAlreadyCancelled     = New(http.StatusUnprocessableEntity, "预订已是取消状态")
	ErrCancelledImmutable   = New(http.StatusUnprocessableEntity, "已取消的预订不能再确认")
	ErrConfirmedLocked      = New(http.StatusUnprocessableEntity, "已确认的预订不允许此操作")
	ErrReservationNotOwned  = New(http.StatusUnprocessableEntity, "客人与该预订不匹配")
)

// 通知错误
var (
	ErrSmsSendFail    = New(http.StatusInternalServerError, "短信发送失败")
	ErrSmsSendTooFast = New(http.StatusTooManyRequests, "短信发送过于频繁")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

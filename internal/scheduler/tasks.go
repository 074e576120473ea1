// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/logger"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
)

// 操作日志保留天数
const operationLogRetentionDays = 90

// TaskHandler 任务处理器
type TaskHandler struct {
	db               *gorm.DB
	reservationRepo  *repository.ReservationRepository
	roomRepo         *repository.RoomRepository
	operationLogRepo *repository.OperationLogRepository
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	db *gorm.DB,
	reservationRepo *repository.ReservationRepository,
	roomRepo *repository.RoomRepository,
	operationLogRepo *repository.OperationLogRepository,
) *TaskHandler {
	return &TaskHandler{
		db:               db,
		reservationRepo:  reservationRepo,
		roomRepo:         roomRepo,
		operationLogRepo: operationLogRepo,
	}
}

// ExpirePendingReservations 取消入住日已过仍未确认的预订
// 过期的 PENDING 预订不再占用房间日期
func (h *TaskHandler) ExpirePendingReservations(ctx context.Context) error {
	today := time.Now().Truncate(24 * time.Hour)
	expired, err := h.reservationRepo.ListExpiredPending(ctx, today)
	if err != nil {
		return err
	}

	for _, reservation := range expired {
		if err := h.reservationRepo.UpdateStatus(ctx, reservation.ID, models.ReservationStatusCancelled); err != nil {
			logger.Error("failed to expire pending reservation",
				logger.ReservationID(reservation.ID),
				zap.Error(err),
			)
			continue
		}
		metrics.GetMetrics().RecordReservation(models.ReservationStatusCancelled)
		logger.Info("expired pending reservation cancelled",
			logger.ReservationID(reservation.ID),
			logger.ReservationCode(reservation.ReservationCode),
			zap.Time("check_in_date", reservation.CheckInDate),
		)
	}

	if len(expired) > 0 {
		logger.Info("pending reservation expiry sweep finished", zap.Int("cancelled", len(expired)))
	}
	return nil
}

// RefreshGauges 刷新可用房间与有效预订的监控指标
func (h *TaskHandler) RefreshGauges(ctx context.Context) error {
	availableRooms, err := h.roomRepo.CountAvailable(ctx)
	if err != nil {
		return err
	}
	activeReservations, err := h.reservationRepo.CountActive(ctx)
	if err != nil {
		return err
	}

	m := metrics.GetMetrics()
	m.SetAvailableRooms(float64(availableRooms))
	m.SetActiveReservations(float64(activeReservations))
	return nil
}

// CleanupOperationLogs 清理过期操作日志
func (h *TaskHandler) CleanupOperationLogs(ctx context.Context) error {
	before := time.Now().AddDate(0, 0, -operationLogRetentionDays)
	deleted, err := h.operationLogRepo.DeleteBefore(ctx, before)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Info("operation logs cleaned up",
			zap.Int64("deleted", deleted),
			zap.Time("before", before),
		)
	}
	return nil
}

// RegisterTasks 注册全部定时任务
func (h *TaskHandler) RegisterTasks(s *Scheduler) {
	s.AddTask("expire_pending_reservations", time.Hour, h.ExpirePendingReservations)
	s.AddTask("refresh_gauges", time.Minute, h.RefreshGauges)
	s.AddTask("cleanup_operation_logs", 24*time.Hour, h.CleanupOperationLogs)
}

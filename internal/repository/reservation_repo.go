// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// CreateTx 在事务内创建预订
func (r *ReservationRepository) CreateTx(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByIDWithDetails 根据 ID 获取预订（包含关联信息）
func (r *ReservationRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("Guest").
		Preload("Guests.Guest").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByCode 根据预订号获取预订
func (r *ReservationRepository) GetByCode(ctx context.Context, code string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Where("reservation_code = ?", code).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update 更新预订
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// UpdateTx 在事务内更新预订
func (r *ReservationRepository) UpdateTx(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Save(reservation).Error
}

// UpdateStatus 更新预订状态
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete 删除预订（连同客人关联）
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationGuest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reservation{}, id).Error
	})
}

// List 获取预订列表
func (r *ReservationRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	// 应用过滤条件
	if hotelID, ok := filters["hotel_id"].(int64); ok && hotelID > 0 {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if guestID, ok := filters["guest_id"].(int64); ok && guestID > 0 {
		query = query.Where("guest_id = ?", guestID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if code, ok := filters["reservation_code"].(string); ok && code != "" {
		query = query.Where("reservation_code LIKE ?", "%"+code+"%")
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("check_in_date >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("check_in_date <= ?", endDate)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("Hotel").
		Preload("Room").
		Preload("Guest").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// HasDateConflict 检查房间在日期范围内是否存在占用冲突
// 闭区间判定：已有预订的入住或退房日落在 [checkIn, checkOut] 内，
// 或已有预订完全覆盖该范围。仅 PENDING/CONFIRMED 参与判定。
func (r *ReservationRepository) HasDateConflict(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error) {
	return r.hasDateConflict(ctx, r.db, roomID, checkIn, checkOut, excludeID)
}

// HasDateConflictTx 在事务内检查日期冲突，配合房间行锁使用
func (r *ReservationRepository) HasDateConflictTx(ctx context.Context, tx *gorm.DB, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error) {
	return r.hasDateConflict(ctx, tx, roomID, checkIn, checkOut, excludeID)
}

func (r *ReservationRepository) hasDateConflict(ctx context.Context, db *gorm.DB, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveReservationStatuses).
		Where(
			"(check_in_date BETWEEN ? AND ?) OR (check_out_date BETWEEN ? AND ?) OR (check_in_date <= ? AND check_out_date >= ?)",
			checkIn, checkOut, checkIn, checkOut, checkIn, checkOut,
		)
	if excludeID != nil && *excludeID > 0 {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByRoom 统计房间关联的预订数量（不限状态）
func (r *ReservationRepository) CountByRoom(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

// CountActive 统计有效预订数量（PENDING/CONFIRMED）
func (r *ReservationRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("status IN ?", models.ActiveReservationStatuses).
		Count(&count).Error
	return count, err
}

// ListExpiredPending 查询入住日已过仍未确认的预订
func (r *ReservationRepository) ListExpiredPending(ctx context.Context, before time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ReservationStatusPending).
		Where("check_in_date < ?", before).
		Find(&reservations).Error
	return reservations, err
}

// GetStatusCounts 按状态统计预订数量
func (r *ReservationRepository) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64)
	for _, row := range results {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

// GetConfirmedRevenue 统计已确认预订的总金额
func (r *ReservationRepository) GetConfirmedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("status = ?", models.ReservationStatusConfirmed).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// GetAverageStayNights 统计有效预订的平均入住晚数
func (r *ReservationRepository) GetAverageStayNights(ctx context.Context) (float64, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("status IN ?", models.ActiveReservationStatuses).
		Find(&reservations).Error
	if err != nil {
		return 0, err
	}
	if len(reservations) == 0 {
		return 0, nil
	}

	var totalNights int
	for _, reservation := range reservations {
		totalNights += reservation.Nights()
	}
	return float64(totalNights) / float64(len(reservations)), nil
}

// CreateGuestLink 创建预订客人关联
func (r *ReservationRepository) CreateGuestLink(ctx context.Context, link *models.ReservationGuest) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// CreateGuestLinkTx 在事务内创建预订客人关联
func (r *ReservationRepository) CreateGuestLinkTx(ctx context.Context, tx *gorm.DB, link *models.ReservationGuest) error {
	return tx.WithContext(ctx).Create(link).Error
}

// ListGuestLinks 获取预订的客人关联列表
func (r *ReservationRepository) ListGuestLinks(ctx context.Context, reservationID int64) ([]*models.ReservationGuest, error) {
	var links []*models.ReservationGuest
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Preload("Guest").
		Order("is_titular DESC, id ASC").
		Find(&links).Error
	return links, err
}

// DeleteGuestLinks 删除预订的全部客人关联
func (r *ReservationRepository) DeleteGuestLinks(ctx context.Context, reservationID int64) error {
	return r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Delete(&models.ReservationGuest{}).Error
}

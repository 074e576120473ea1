// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-reservation-backend/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房间
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDWithHotel 根据 ID 获取房间（包含酒店信息）
func (r *RoomRepository) GetByIDWithHotel(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDForUpdate 根据 ID 获取房间并加行锁，必须在事务内调用
// SQLite 不支持 SELECT FOR UPDATE，由单写连接保证串行化
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*models.Room, error) {
	var room models.Room
	query := tx.WithContext(ctx)
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房间
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateFields 更新指定字段
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error
}

// SetAvailable 更新房间可预订标记
func (r *RoomRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("available", available).Error
}

// List 获取房间列表
func (r *RoomRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	// 应用过滤条件
	if hotelID, ok := filters["hotel_id"].(int64); ok && hotelID > 0 {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if roomType, ok := filters["room_type"].(string); ok && roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if occupancy, ok := filters["occupancy"].(string); ok && occupancy != "" {
		query = query.Where("occupancy = ?", occupancy)
	}
	if available, ok := filters["available"].(bool); ok {
		query = query.Where("available = ?", available)
	}
	if minCapacity, ok := filters["min_capacity"].(int); ok && minCapacity > 0 {
		query = query.Where("capacity >= ?", minCapacity)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Preload("Hotel").Order("room_number ASC").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListByHotel 获取酒店下的房间列表
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64, available *bool) ([]*models.Room, error) {
	var rooms []*models.Room
	query := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if available != nil {
		query = query.Where("available = ?", *available)
	}
	err := query.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

// ListAvailableForDates 获取酒店在指定日期范围内可预订的房间
// 过滤条件：可预订标记为真，且日期范围内没有 PENDING/CONFIRMED 预订冲突
func (r *RoomRepository) ListAvailableForDates(ctx context.Context, hotelID int64, checkIn, checkOut time.Time, roomType string, minCapacity int) ([]*models.Room, error) {
	var rooms []*models.Room

	conflict := r.db.Model(&models.Reservation{}).
		Select("room_id").
		Where("status IN ?", models.ActiveReservationStatuses).
		Where(
			"(check_in_date BETWEEN ? AND ?) OR (check_out_date BETWEEN ? AND ?) OR (check_in_date <= ? AND check_out_date >= ?)",
			checkIn, checkOut, checkIn, checkOut, checkIn, checkOut,
		)

	query := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Where("available = ?", true).
		Where("id NOT IN (?)", conflict)

	if roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if minCapacity > 0 {
		query = query.Where("capacity >= ?", minCapacity)
	}

	err := query.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

// ExistsByRoomNumber 检查酒店内房间号是否存在
func (r *RoomRepository) ExistsByRoomNumber(ctx context.Context, hotelID int64, roomNumber string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Where("room_number = ?", roomNumber)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ExistsByTypeAndOccupancy 检查酒店内房间类型+入住规格组合是否存在
func (r *RoomRepository) ExistsByTypeAndOccupancy(ctx context.Context, hotelID int64, roomType, occupancy string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Where("room_type = ?", roomType).
		Where("occupancy = ?", occupancy)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByHotel 统计酒店下的房间数量
func (r *RoomRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Count(&count).Error
	return count, err
}

// CountAvailable 统计标记为可预订的房间总数
func (r *RoomRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("available = ?", true).
		Count(&count).Error
	return count, err
}

// Delete 删除房间
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

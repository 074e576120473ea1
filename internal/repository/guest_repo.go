// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/models"
)

// GuestRepository 客人仓储
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建客人仓储
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create 创建客人
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// GetByID 根据 ID 获取客人
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// GetByDocument 根据证件号获取客人
func (r *GuestRepository) GetByDocument(ctx context.Context, documentNumber string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("document_number = ?", documentNumber).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update 更新客人
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// UpdateFields 更新指定字段
func (r *GuestRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Updates(fields).Error
}

// List 获取客人列表
func (r *GuestRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Guest{})

	// 应用过滤条件
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR document_number LIKE ?", like, like, like)
	}
	if documentType, ok := filters["document_type"].(string); ok && documentType != "" {
		query = query.Where("document_type = ?", documentType)
	}
	if nationality, ok := filters["nationality"].(string); ok && nationality != "" {
		query = query.Where("nationality = ?", nationality)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

// ExistsByDocument 检查证件号是否存在
func (r *GuestRepository) ExistsByDocument(ctx context.Context, documentNumber string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("document_number = ?", documentNumber)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Delete 删除客人
func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Guest{}, id).Error
}

// CountReservationLinks 统计客人关联的预订数量（作为主客人或同行客人）
func (r *GuestRepository) CountReservationLinks(ctx context.Context, guestID int64) (int64, error) {
	var asTitular int64
	if err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("guest_id = ?", guestID).
		Count(&asTitular).Error; err != nil {
		return 0, err
	}

	var asCompanion int64
	if err := r.db.WithContext(ctx).Model(&models.ReservationGuest{}).
		Where("guest_id = ?", guestID).
		Count(&asCompanion).Error; err != nil {
		return 0, err
	}

	return asTitular + asCompanion, nil
}

// GetStatistics 获取客人的预订统计
func (r *GuestRepository) GetStatistics(ctx context.Context, guestID int64) (map[string]int64, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("status, count(*) as count").
		Where("guest_id = ?", guestID).
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

// Package hotel 提供酒店与房间管理服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/errors"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
)

// HotelService 酒店服务
type HotelService struct {
	db        *gorm.DB
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
}

// NewHotelService 创建酒店服务
func NewHotelService(
	db *gorm.DB,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
) *HotelService {
	return &HotelService{
		db:        db,
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
	}
}

// CreateHotelRequest 创建酒店请求
type CreateHotelRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Address   string `json:"address" binding:"required,max=255"`
	City      string `json:"city" binding:"required,max=50"`
	TaxID     string `json:"tax_id" binding:"required,max=50"`
	RoomCount int    `json:"room_count" binding:"required"`
}

// UpdateHotelRequest 更新酒店请求
type UpdateHotelRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	TaxID     *string `json:"tax_id,omitempty"`
	RoomCount *int    `json:"room_count,omitempty"`
}

// HotelListRequest 酒店列表请求
type HotelListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Name     string `form:"name" json:"name"`
	City     string `form:"city" json:"city"`
	Keyword  string `form:"keyword" json:"keyword"`
}

// HotelInfo 酒店信息
type HotelInfo struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	TaxID           string     `json:"tax_id"`
	RoomCount       int        `json:"room_count"`
	RegisteredRooms int64      `json:"registered_rooms"`
	Rooms           []RoomInfo `json:"rooms,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HotelStatistics 酒店统计信息
type HotelStatistics struct {
	HotelID         int64            `json:"hotel_id"`
	RoomCount       int              `json:"room_count"`
	RegisteredRooms int64            `json:"registered_rooms"`
	AvailableRooms  int64            `json:"available_rooms"`
	RoomsByType     map[string]int64 `json:"rooms_by_type"`
}

// CreateHotel 创建酒店
func (s *HotelService) CreateHotel(ctx context.Context, req *CreateHotelRequest) (*HotelInfo, error) {
	if req.RoomCount < models.HotelMinRoomCount || req.RoomCount > models.HotelMaxRoomCount {
		return nil, errors.ErrInvalidParams.WithMessagef(
			"房间数量必须在 %d 到 %d 之间", models.HotelMinRoomCount, models.HotelMaxRoomCount)
	}

	// 税号唯一
	exists, err := s.hotelRepo.ExistsByTaxID(ctx, req.TaxID, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrHotelTaxIDTaken
	}

	hotel := &models.Hotel{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		TaxID:     req.TaxID,
		RoomCount: req.RoomCount,
	}
	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertHotelInfo(hotel, 0), nil
}

// GetHotel 获取酒店详情（包含房间列表）
func (s *HotelService) GetHotel(ctx context.Context, id int64) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.GetByIDWithRooms(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := s.convertHotelInfo(hotel, int64(len(hotel.Rooms)))
	for i := range hotel.Rooms {
		info.Rooms = append(info.Rooms, *convertRoomInfo(&hotel.Rooms[i]))
	}
	return info, nil
}

// GetHotelList 获取酒店列表
func (s *HotelService) GetHotelList(ctx context.Context, req *HotelListRequest) ([]*HotelInfo, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}
	offset := (req.Page - 1) * req.PageSize

	var hotels []*models.Hotel
	var total int64
	var err error

	// 关键词搜索覆盖名称/地址/城市
	if req.Keyword != "" {
		hotels, total, err = s.hotelRepo.Search(ctx, req.Keyword, offset, req.PageSize)
	} else {
		filters := map[string]interface{}{}
		if req.Name != "" {
			filters["name"] = req.Name
		}
		if req.City != "" {
			filters["city"] = req.City
		}
		hotels, total, err = s.hotelRepo.List(ctx, offset, req.PageSize, filters)
	}
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*HotelInfo, 0, len(hotels))
	for _, hotel := range hotels {
		result = append(result, s.convertHotelInfo(hotel, 0))
	}
	return result, total, nil
}

// UpdateHotel 更新酒店
func (s *HotelService) UpdateHotel(ctx context.Context, id int64, req *UpdateHotelRequest) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.TaxID != nil && *req.TaxID != hotel.TaxID {
		exists, err := s.hotelRepo.ExistsByTaxID(ctx, *req.TaxID, id)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrHotelTaxIDTaken
		}
		hotel.TaxID = *req.TaxID
	}

	if req.RoomCount != nil {
		if *req.RoomCount < models.HotelMinRoomCount || *req.RoomCount > models.HotelMaxRoomCount {
			return nil, errors.ErrInvalidParams.WithMessagef(
				"房间数量必须在 %d 到 %d 之间", models.HotelMinRoomCount, models.HotelMaxRoomCount)
		}
		// 申报数量不能低于已登记的房间数
		registered, err := s.hotelRepo.GetRoomCount(ctx, id)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if int64(*req.RoomCount) < registered {
			return nil, errors.ErrInvalidParams.WithMessagef(
				"申报房间数量不能低于已登记的 %d 间", registered)
		}
		hotel.RoomCount = *req.RoomCount
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.City != nil {
		hotel.City = *req.City
	}

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertHotelInfo(hotel, 0), nil
}

// DeleteHotel 删除酒店，存在已登记房间时拒绝
func (s *HotelService) DeleteHotel(ctx context.Context, id int64) error {
	if _, err := s.hotelRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	roomCount, err := s.hotelRepo.GetRoomCount(ctx, id)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if roomCount > 0 {
		return errors.ErrHotelHasRooms
	}

	if err := s.hotelRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetCities 获取城市列表
func (s *HotelService) GetCities(ctx context.Context) ([]string, error) {
	cities, err := s.hotelRepo.GetCities(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return cities, nil
}

// GetHotelStatistics 获取酒店统计信息
func (s *HotelService) GetHotelStatistics(ctx context.Context, id int64) (*HotelStatistics, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	registered, err := s.hotelRepo.GetRoomCount(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	available, err := s.hotelRepo.GetAvailableRoomCount(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	byType, err := s.hotelRepo.GetRoomCountByType(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &HotelStatistics{
		HotelID:         hotel.ID,
		RoomCount:       hotel.RoomCount,
		RegisteredRooms: registered,
		AvailableRooms:  available,
		RoomsByType:     byType,
	}, nil
}

// convertHotelInfo 转换酒店信息
func (s *HotelService) convertHotelInfo(hotel *models.Hotel, registeredRooms int64) *HotelInfo {
	return &HotelInfo{
		ID:              hotel.ID,
		Name:            hotel.Name,
		Address:         hotel.Address,
		City:            hotel.City,
		TaxID:           hotel.TaxID,
		RoomCount:       hotel.RoomCount,
		RegisteredRooms: registeredRooms,
		CreatedAt:       hotel.CreatedAt,
		UpdatedAt:       hotel.UpdatedAt,
	}
}

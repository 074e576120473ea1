package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/errors"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
)

// RoomService 房间服务
type RoomService struct {
	db              *gorm.DB
	roomRepo        *repository.RoomRepository
	hotelRepo       *repository.HotelRepository
	reservationRepo *repository.ReservationRepository
}

// NewRoomService 创建房间服务
func NewRoomService(
	db *gorm.DB,
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	reservationRepo *repository.ReservationRepository,
) *RoomService {
	return &RoomService{
		db:              db,
		roomRepo:        roomRepo,
		hotelRepo:       hotelRepo,
		reservationRepo: reservationRepo,
	}
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	HotelID    int64  `json:"hotel_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required,max=20"`
	RoomType   string `json:"room_type" binding:"required"`
	Occupancy  string `json:"occupancy" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required"`
	Available  *bool  `json:"available,omitempty"`
}

// UpdateRoomRequest 更新房间请求
type UpdateRoomRequest struct {
	RoomNumber *string `json:"room_number,omitempty"`
	RoomType   *string `json:"room_type,omitempty"`
	Occupancy  *string `json:"occupancy,omitempty"`
	Capacity   *int    `json:"capacity,omitempty"`
	Available  *bool   `json:"available,omitempty"`
}

// RoomListRequest 房间列表请求
type RoomListRequest struct {
	Page        int    `form:"page" json:"page"`
	PageSize    int    `form:"page_size" json:"page_size"`
	HotelID     int64  `form:"hotel_id" json:"hotel_id"`
	RoomType    string `form:"room_type" json:"room_type"`
	Occupancy   string `form:"occupancy" json:"occupancy"`
	Available   *bool  `form:"available" json:"available"`
	MinCapacity int    `form:"min_capacity" json:"min_capacity"`
}

// RoomInfo 房间信息
type RoomInfo struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	HotelName  string    `json:"hotel_name,omitempty"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	Occupancy  string    `json:"occupancy"`
	Capacity   int       `json:"capacity"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateRoom 创建房间
func (s *RoomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*RoomInfo, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := validateRoomSpec(req.RoomType, req.Occupancy, req.Capacity); err != nil {
		return nil, err
	}

	// 房间号在酒店内唯一
	exists, err := s.roomRepo.ExistsByRoomNumber(ctx, req.HotelID, req.RoomNumber, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrRoomNumberTaken
	}

	// 类型+入住规格组合在酒店内唯一
	exists, err = s.roomRepo.ExistsByTypeAndOccupancy(ctx, req.HotelID, req.RoomType, req.Occupancy, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrRoomTypeDuplicated
	}

	// 登记数量不能超过酒店申报的房间数
	registered, err := s.roomRepo.CountByHotel(ctx, req.HotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if registered >= int64(hotel.RoomCount) {
		return nil, errors.ErrRoomLimitExceed
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	room := &models.Room{
		HotelID:    req.HotelID,
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Occupancy:  req.Occupancy,
		Capacity:   req.Capacity,
		Available:  available,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := convertRoomInfo(room)
	info.HotelName = hotel.Name
	return info, nil
}

// GetRoom 获取房间详情
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByIDWithHotel(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := convertRoomInfo(room)
	if room.Hotel != nil {
		info.HotelName = room.Hotel.Name
	}
	return info, nil
}

// GetRoomList 获取房间列表
func (s *RoomService) GetRoomList(ctx context.Context, req *RoomListRequest) ([]*RoomInfo, int64, error) {
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

	filters := map[string]interface{}{}
	if req.HotelID > 0 {
		filters["hotel_id"] = req.HotelID
	}
	if req.RoomType != "" {
		filters["room_type"] = req.RoomType
	}
	if req.Occupancy != "" {
		filters["occupancy"] = req.Occupancy
	}
	if req.Available != nil {
		filters["available"] = *req.Available
	}
	if req.MinCapacity > 0 {
		filters["min_capacity"] = req.MinCapacity
	}

	rooms, total, err := s.roomRepo.List(ctx, offset, req.PageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		info := convertRoomInfo(room)
		if room.Hotel != nil {
			info.HotelName = room.Hotel.Name
		}
		result = append(result, info)
	}
	return result, total, nil
}

// ListAvailableRooms 获取酒店在指定日期范围内可预订的房间
// 入住日期不得早于当天，查询历史日期没有业务意义
func (s *RoomService) ListAvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time, roomType string, minCapacity int) ([]*RoomInfo, error) {
	if !checkOut.After(checkIn) {
		return nil, errors.ErrDateRangeInvalid
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, errors.ErrDateRangeInvalid.WithMessage("入住日期不能早于今天")
	}

	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	rooms, err := s.roomRepo.ListAvailableForDates(ctx, hotelID, checkIn, checkOut, roomType, minCapacity)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, nil
}

// UpdateRoom 更新房间
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	roomType := room.RoomType
	occupancy := room.Occupancy
	capacity := room.Capacity
	if req.RoomType != nil {
		roomType = *req.RoomType
	}
	if req.Occupancy != nil {
		occupancy = *req.Occupancy
	}
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if err := validateRoomSpec(roomType, occupancy, capacity); err != nil {
		return nil, err
	}

	if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
		exists, err := s.roomRepo.ExistsByRoomNumber(ctx, room.HotelID, *req.RoomNumber, id)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrRoomNumberTaken
		}
		room.RoomNumber = *req.RoomNumber
	}

	if roomType != room.RoomType || occupancy != room.Occupancy {
		exists, err := s.roomRepo.ExistsByTypeAndOccupancy(ctx, room.HotelID, roomType, occupancy, id)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrRoomTypeDuplicated
		}
	}

	room.RoomType = roomType
	room.Occupancy = occupancy
	room.Capacity = capacity
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(room), nil
}

// SetAvailability 更新房间可预订标记
func (s *RoomService) SetAvailability(ctx context.Context, id int64, available bool) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if room.Available != available {
		if err := s.roomRepo.SetAvailable(ctx, id, available); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		room.Available = available
	}
	return convertRoomInfo(room), nil
}

// DeleteRoom 删除房间，存在关联预订时拒绝
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	// 任何状态的历史预订都阻止删除
	count, err := s.reservationRepo.CountByRoom(ctx, id)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if count > 0 {
		return errors.ErrRoomHasReservations
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// validateRoomSpec 校验房间类型、入住规格与容纳人数
func validateRoomSpec(roomType, occupancy string, capacity int) error {
	if !models.IsValidRoomType(roomType) {
		return errors.ErrInvalidParams.WithMessagef("无效的房间类型: %s", roomType)
	}
	if !models.IsValidOccupancy(occupancy) {
		return errors.ErrInvalidParams.WithMessagef("无效的入住规格: %s", occupancy)
	}
	if capacity < 1 || capacity > models.OccupancyCapacity(occupancy) {
		return errors.ErrRoomCapacityInvalid
	}
	return nil
}

// convertRoomInfo 转换房间信息
func convertRoomInfo(room *models.Room) *RoomInfo {
	return &RoomInfo{
		ID:         room.ID,
		HotelID:    room.HotelID,
		RoomNumber: room.RoomNumber,
		RoomType:   room.RoomType,
		Occupancy:  room.Occupancy,
		Capacity:   room.Capacity,
		Available:  room.Available,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

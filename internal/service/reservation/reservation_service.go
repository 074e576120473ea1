// Package reservation 提供预订生命周期管理服务
package reservation

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/errors"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/logger"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/utils"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
	"github.com/dumeirei/hotel-reservation-backend/pkg/sms"
)

// ReservationService 预订服务
type ReservationService struct {
	db              *gorm.DB
	reservationRepo *repository.ReservationRepository
	roomRepo        *repository.RoomRepository
	hotelRepo       *repository.HotelRepository
	guestRepo       *repository.GuestRepository
	smsSender       sms.Sender
}

// NewReservationService 创建预订服务
func NewReservationService(
	db *gorm.DB,
	reservationRepo *repository.ReservationRepository,
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	guestRepo *repository.GuestRepository,
	smsSender sms.Sender,
) *ReservationService {
	return &ReservationService{
		db:              db,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		hotelRepo:       hotelRepo,
		guestRepo:       guestRepo,
		smsSender:       smsSender,
	}
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	HotelID      int64   `json:"hotel_id" binding:"required"`
	RoomID       int64   `json:"room_id" binding:"required"`
	GuestID      int64   `json:"guest_id" binding:"required"`
	CheckInDate  string  `json:"check_in_date" binding:"required"`  // 2006-01-02
	CheckOutDate string  `json:"check_out_date" binding:"required"` // 2006-01-02
	GuestCount   int     `json:"guest_count" binding:"required"`
	TotalPrice   float64 `json:"total_price" binding:"required"`
	Notes        *string `json:"notes,omitempty"`
	CompanionIDs []int64 `json:"companion_ids,omitempty"`
}

// UpdateReservationRequest 更新预订请求
// Status 可与内容修改同请求提交，流转规则与状态接口一致
type UpdateReservationRequest struct {
	RoomID       *int64   `json:"room_id,omitempty"`
	CheckInDate  *string  `json:"check_in_date,omitempty"`
	CheckOutDate *string  `json:"check_out_date,omitempty"`
	GuestCount   *int     `json:"guest_count,omitempty"`
	TotalPrice   *float64 `json:"total_price,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// ReservationListRequest 预订列表请求
type ReservationListRequest struct {
	Page            int    `form:"page" json:"page"`
	PageSize        int    `form:"page_size" json:"page_size"`
	HotelID         int64  `form:"hotel_id" json:"hotel_id"`
	RoomID          int64  `form:"room_id" json:"room_id"`
	GuestID         int64  `form:"guest_id" json:"guest_id"`
	Status          string `form:"status" json:"status"`
	ReservationCode string `form:"reservation_code" json:"reservation_code"`
	StartDate       string `form:"start_date" json:"start_date"`
	EndDate         string `form:"end_date" json:"end_date"`
}

// GuestSummary 预订关联客人摘要
type GuestSummary struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	IsTitular bool   `json:"is_titular"`
}

// ReservationInfo 预订信息
type ReservationInfo struct {
	ID              int64          `json:"id"`
	ReservationCode string         `json:"reservation_code"`
	HotelID         int64          `json:"hotel_id"`
	HotelName       string         `json:"hotel_name,omitempty"`
	RoomID          int64          `json:"room_id"`
	RoomNumber      string         `json:"room_number,omitempty"`
	GuestID         int64          `json:"guest_id"`
	GuestName       string         `json:"guest_name,omitempty"`
	CheckInDate     string         `json:"check_in_date"`
	CheckOutDate    string         `json:"check_out_date"`
	Nights          int            `json:"nights"`
	GuestCount      int            `json:"guest_count"`
	TotalPrice      float64        `json:"total_price"`
	Status          string         `json:"status"`
	StatusName      string         `json:"status_name"`
	Notes           *string        `json:"notes,omitempty"`
	Guests          []GuestSummary `json:"guests,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// AvailabilityInfo 房间可用性检查结果
type AvailabilityInfo struct {
	Available    bool   `json:"available"`
	RoomID       int64  `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// Statistics 预订统计信息
type Statistics struct {
	StatusCounts     map[string]int64 `json:"status_counts"`
	ActiveCount      int64            `json:"active_count"`
	ConfirmedRevenue float64          `json:"confirmed_revenue"`
	AverageNights    float64          `json:"average_nights"`
	AvailableRooms   int64            `json:"available_rooms"`
}

// CreateReservation 创建预订
// 在事务内对房间加行锁后做冲突与容量检查，避免并发重复预订
func (s *ReservationService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*ReservationInfo, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if req.GuestCount < models.ReservationMinGuestCount || req.GuestCount > models.ReservationMaxGuestCount {
		return nil, errors.ErrGuestCountInvalid
	}
	if req.TotalPrice < 0 {
		return nil, errors.ErrInvalidParams.WithMessage("总金额不能为负数")
	}

	if _, err := s.hotelRepo.GetByID(ctx, req.HotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	guest, err := s.guestRepo.GetByID(ctx, req.GuestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 主客人以入住日计算整周岁年龄
	if utils.AgeAt(guest.BirthDate, checkIn) < models.MinGuestAge {
		return nil, errors.ErrGuestUnderage
	}

	companions, err := s.loadCompanions(ctx, req.GuestID, req.CompanionIDs)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		ReservationCode: utils.GenerateReservationCode("R"),
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		GuestID:         req.GuestID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		GuestCount:      req.GuestCount,
		TotalPrice:      req.TotalPrice,
		Status:          models.ReservationStatusPending,
		Notes:           req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.GetByIDForUpdate(ctx, tx, req.RoomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}
		if room.HotelID != req.HotelID {
			return errors.ErrInvalidParams.WithMessage("房间不属于该酒店")
		}
		if !room.Available {
			return errors.ErrRoomNotAvailable
		}
		if req.GuestCount > room.Capacity {
			return errors.ErrCapacityExceeded
		}

		conflict, err := s.reservationRepo.HasDateConflictTx(ctx, tx, req.RoomID, checkIn, checkOut, nil)
		if err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if conflict {
			metrics.GetMetrics().RecordDateConflict()
			return errors.ErrDateConflict
		}

		if err := s.reservationRepo.CreateTx(ctx, tx, reservation); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		// 主客人与同行客人关联
		links := []*models.ReservationGuest{
			{ReservationID: reservation.ID, GuestID: req.GuestID, IsTitular: true},
		}
		for _, companion := range companions {
			links = append(links, &models.ReservationGuest{
				ReservationID: reservation.ID,
				GuestID:       companion.ID,
			})
		}
		for _, link := range links {
			if err := s.reservationRepo.CreateGuestLinkTx(ctx, tx, link); err != nil {
				return errors.ErrDatabaseError.WithError(err)
			}
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordReservation(models.ReservationStatusPending)
	logger.Info("预订已创建",
		logger.ReservationID(reservation.ID),
		logger.ReservationCode(reservation.ReservationCode),
		logger.RoomID(reservation.RoomID),
	)

	return s.GetReservation(ctx, reservation.ID)
}

// GetReservation 获取预订详情
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*ReservationInfo, error) {
	reservation, err := s.reservationRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertReservationInfo(reservation), nil
}

// GetReservationByCode 根据预订号获取预订
func (s *ReservationService) GetReservationByCode(ctx context.Context, code string) (*ReservationInfo, error) {
	reservation, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetReservation(ctx, reservation.ID)
}

// GetReservationList 获取预订列表
func (s *ReservationService) GetReservationList(ctx context.Context, req *ReservationListRequest) ([]*ReservationInfo, int64, error) {
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
	if req.RoomID > 0 {
		filters["room_id"] = req.RoomID
	}
	if req.GuestID > 0 {
		filters["guest_id"] = req.GuestID
	}
	if req.Status != "" {
		if !models.IsValidReservationStatus(req.Status) {
			return nil, 0, errors.ErrInvalidParams.WithMessagef("无效的预订状态: %s", req.Status)
		}
		filters["status"] = req.Status
	}
	if req.ReservationCode != "" {
		filters["reservation_code"] = req.ReservationCode
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, 0, errors.ErrInvalidParams.WithMessage("开始日期格式应为 YYYY-MM-DD")
		}
		filters["start_date"] = startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, 0, errors.ErrInvalidParams.WithMessage("结束日期格式应为 YYYY-MM-DD")
		}
		filters["end_date"] = endDate
	}

	reservations, total, err := s.reservationRepo.List(ctx, offset, req.PageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*ReservationInfo, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, convertReservationInfo(reservation))
	}
	return result, total, nil
}

// UpdateReservation 更新预订内容
// PENDING 与 CANCELLED 状态可自由修改；已确认的预订仅在同一请求中流转状态时才允许修改
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, req *UpdateReservationRequest) (*ReservationInfo, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	prevStatus := reservation.Status
	newStatus := prevStatus
	if req.Status != nil && *req.Status != prevStatus {
		if err := validateStatusTransition(prevStatus, *req.Status); err != nil {
			return nil, err
		}
		newStatus = *req.Status
	}
	if prevStatus == models.ReservationStatusConfirmed && newStatus == models.ReservationStatusConfirmed {
		return nil, errors.ErrConfirmedLocked.WithMessage("已确认的预订不允许修改，请先取消或在请求中一并变更状态")
	}

	checkIn := reservation.CheckInDate
	checkOut := reservation.CheckOutDate
	if req.CheckInDate != nil || req.CheckOutDate != nil {
		inStr := reservation.CheckInDate.Format("2006-01-02")
		outStr := reservation.CheckOutDate.Format("2006-01-02")
		if req.CheckInDate != nil {
			inStr = *req.CheckInDate
		}
		if req.CheckOutDate != nil {
			outStr = *req.CheckOutDate
		}
		checkIn, checkOut, err = parseStayDates(inStr, outStr)
		if err != nil {
			return nil, err
		}
	}

	roomID := reservation.RoomID
	if req.RoomID != nil && *req.RoomID > 0 {
		roomID = *req.RoomID
	}

	guestCount := reservation.GuestCount
	if req.GuestCount != nil {
		if *req.GuestCount < models.ReservationMinGuestCount || *req.GuestCount > models.ReservationMaxGuestCount {
			return nil, errors.ErrGuestCountInvalid
		}
		guestCount = *req.GuestCount
	}

	if req.TotalPrice != nil {
		if *req.TotalPrice < 0 {
			return nil, errors.ErrInvalidParams.WithMessage("总金额不能为负数")
		}
		reservation.TotalPrice = *req.TotalPrice
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.GetByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}
		if room.HotelID != reservation.HotelID {
			return errors.ErrInvalidParams.WithMessage("房间不属于该酒店")
		}
		if roomID != reservation.RoomID && !room.Available {
			return errors.ErrRoomNotAvailable
		}
		if guestCount > room.Capacity {
			return errors.ErrCapacityExceeded
		}

		// 冲突检查排除自身
		conflict, err := s.reservationRepo.HasDateConflictTx(ctx, tx, roomID, checkIn, checkOut, &reservation.ID)
		if err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if conflict {
			metrics.GetMetrics().RecordDateConflict()
			return errors.ErrDateConflict
		}

		reservation.RoomID = roomID
		reservation.CheckInDate = checkIn
		reservation.CheckOutDate = checkOut
		reservation.GuestCount = guestCount
		reservation.Status = newStatus
		return s.reservationRepo.UpdateTx(ctx, tx, reservation)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if newStatus != prevStatus {
		metrics.GetMetrics().RecordReservation(newStatus)
		logger.Info("预订状态已随更新流转",
			logger.ReservationID(id),
			logger.ReservationCode(reservation.ReservationCode),
			zap.String("from", prevStatus),
			zap.String("to", newStatus),
		)
		if newStatus == models.ReservationStatusConfirmed {
			s.notifyConfirmed(reservation)
		}
	}

	return s.GetReservation(ctx, id)
}

// validateStatusTransition 校验状态流转是否合法
// CANCELLED 不可再确认，任何状态不允许回退到 PENDING
func validateStatusTransition(from, to string) error {
	if !models.IsValidReservationStatus(to) {
		return errors.ErrInvalidParams.WithMessagef("无效的预订状态: %s", to)
	}
	switch to {
	case models.ReservationStatusConfirmed:
		if from == models.ReservationStatusConfirmed {
			return errors.ErrAlreadyConfirmed
		}
		if from == models.ReservationStatusCancelled {
			return errors.ErrCancelledImmutable
		}
	case models.ReservationStatusCancelled:
		if from == models.ReservationStatusCancelled {
			return errors.ErrAlreadyCancelled
		}
	case models.ReservationStatusPending:
		return errors.ErrInvalidParams.WithMessage("预订不支持回退到待确认状态")
	}
	return nil
}

// UpdateStatus 更新预订状态
func (s *ReservationService) UpdateStatus(ctx context.Context, id int64, status string) (*ReservationInfo, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := validateStatusTransition(reservation.Status, status); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordReservation(status)
	logger.Info("预订状态已更新",
		logger.ReservationID(id),
		logger.ReservationCode(reservation.ReservationCode),
		zap.String("from", reservation.Status),
		zap.String("to", status),
	)

	if status == models.ReservationStatusConfirmed {
		s.notifyConfirmed(reservation)
	}

	return s.GetReservation(ctx, id)
}

// ConfirmReservation 确认预订
func (s *ReservationService) ConfirmReservation(ctx context.Context, id int64) (*ReservationInfo, error) {
	return s.UpdateStatus(ctx, id, models.ReservationStatusConfirmed)
}

// CancelReservation 取消预订
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) (*ReservationInfo, error) {
	return s.UpdateStatus(ctx, id, models.ReservationStatusCancelled)
}

// DeleteReservation 删除预订，已确认状态拒绝删除
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReservationNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if reservation.Status == models.ReservationStatusConfirmed {
		return errors.ErrConfirmedLocked.WithMessage("已确认的预订不允许删除，请先取消")
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// CheckAvailability 检查房间在日期范围内是否存在预订冲突
// 只做日期冲突判断，不关心房间的停用开关；excludeID 用于编辑预订时排除自身
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID int64, checkInStr, checkOutStr string, excludeID *int64) (*AvailabilityInfo, error) {
	checkIn, checkOut, err := parseStayDates(checkInStr, checkOutStr)
	if err != nil {
		return nil, err
	}

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	conflict, err := s.reservationRepo.HasDateConflict(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &AvailabilityInfo{
		Available:    !conflict,
		RoomID:       roomID,
		CheckInDate:  checkIn.Format("2006-01-02"),
		CheckOutDate: checkOut.Format("2006-01-02"),
	}, nil
}

// GetStatistics 获取预订统计信息并刷新运营指标
func (s *ReservationService) GetStatistics(ctx context.Context) (*Statistics, error) {
	statusCounts, err := s.reservationRepo.GetStatusCounts(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	activeCount, err := s.reservationRepo.CountActive(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	revenue, err := s.reservationRepo.GetConfirmedRevenue(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	averageNights, err := s.reservationRepo.GetAverageStayNights(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	availableRooms, err := s.roomRepo.CountAvailable(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().SetActiveReservations(float64(activeCount))
	metrics.GetMetrics().SetAvailableRooms(float64(availableRooms))

	return &Statistics{
		StatusCounts:     statusCounts,
		ActiveCount:      activeCount,
		ConfirmedRevenue: revenue,
		AverageNights:    averageNights,
		AvailableRooms:   availableRooms,
	}, nil
}

// loadCompanions 加载同行客人，排除主客人与重复项
func (s *ReservationService) loadCompanions(ctx context.Context, titularID int64, companionIDs []int64) ([]*models.Guest, error) {
	ids := utils.Unique(companionIDs)
	companions := make([]*models.Guest, 0, len(ids))
	for _, companionID := range ids {
		if companionID == titularID {
			continue
		}
		companion, err := s.guestRepo.GetByID(ctx, companionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrGuestNotFound.WithMessagef("同行客人不存在: %d", companionID)
			}
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		companions = append(companions, companion)
	}
	return companions, nil
}

// notifyConfirmed 确认后异步发送短信通知，失败只记录日志
func (s *ReservationService) notifyConfirmed(reservation *models.Reservation) {
	if s.smsSender == nil {
		return
	}

	guest, err := s.guestRepo.GetByID(context.Background(), reservation.GuestID)
	if err != nil {
		logger.Warn("获取预订主客人失败，跳过短信通知",
			logger.ReservationID(reservation.ID), zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.smsSender.SendReservationConfirmed(ctx, guest.Phone,
			reservation.ReservationCode, reservation.CheckInDate.Format("2006-01-02"))
		if err != nil {
			metrics.GetMetrics().RecordSMSMessage("aliyun", "failure")
			logger.Warn("预订确认短信发送失败",
				logger.ReservationCode(reservation.ReservationCode), zap.Error(err))
			return
		}
		metrics.GetMetrics().RecordSMSMessage("aliyun", "success")
	}()
}

// parseStayDates 解析入住/退房日期并校验先后顺序
func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse("2006-01-02", checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("入住日期格式应为 YYYY-MM-DD")
	}
	checkOut, err := time.Parse("2006-01-02", checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("退房日期格式应为 YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.ErrDateRangeInvalid
	}
	return checkIn, checkOut, nil
}

// statusName 预订状态中文名
func statusName(status string) string {
	switch status {
	case models.ReservationStatusPending:
		return "待确认"
	case models.ReservationStatusConfirmed:
		return "已确认"
	case models.ReservationStatusCancelled:
		return "已取消"
	default:
		return "未知"
	}
}

// convertReservationInfo 转换预订信息
func convertReservationInfo(reservation *models.Reservation) *ReservationInfo {
	info := &ReservationInfo{
		ID:              reservation.ID,
		ReservationCode: reservation.ReservationCode,
		HotelID:         reservation.HotelID,
		RoomID:          reservation.RoomID,
		GuestID:         reservation.GuestID,
		CheckInDate:     reservation.CheckInDate.Format("2006-01-02"),
		CheckOutDate:    reservation.CheckOutDate.Format("2006-01-02"),
		Nights:          reservation.Nights(),
		GuestCount:      reservation.GuestCount,
		TotalPrice:      reservation.TotalPrice,
		Status:          reservation.Status,
		StatusName:      statusName(reservation.Status),
		Notes:           reservation.Notes,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}

	if reservation.Hotel != nil {
		info.HotelName = reservation.Hotel.Name
	}
	if reservation.Room != nil {
		info.RoomNumber = reservation.Room.RoomNumber
	}
	if reservation.Guest != nil {
		info.GuestName = reservation.Guest.FullName()
	}
	// 关联客人摘要
	for _, link := range reservation.Guests {
		if link.Guest == nil {
			continue
		}
		info.Guests = append(info.Guests, GuestSummary{
			ID:        link.Guest.ID,
			FullName:  link.Guest.FullName(),
			IsTitular: link.IsTitular,
		})
	}

	return info
}

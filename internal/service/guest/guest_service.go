// Package guest 提供客人档案管理服务
package guest

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/errors"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/utils"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
)

// GuestService 客人服务
type GuestService struct {
	guestRepo *repository.GuestRepository
}

// NewGuestService 创建客人服务
func NewGuestService(guestRepo *repository.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// CreateGuestRequest 创建客人请求
type CreateGuestRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=50"`
	LastName       string `json:"last_name" binding:"required,max=50"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required,max=50"`
	Phone          string `json:"phone" binding:"required"`
	BirthDate      string `json:"birth_date" binding:"required"` // 2006-01-02
	Gender         string `json:"gender" binding:"required"`
	Nationality    string `json:"nationality" binding:"required,max=50"`
}

// UpdateGuestRequest 更新客人请求
type UpdateGuestRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	DocumentType   *string `json:"document_type,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	BirthDate      *string `json:"birth_date,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
}

// GuestListRequest 客人列表请求
type GuestListRequest struct {
	Page         int    `form:"page" json:"page"`
	PageSize     int    `form:"page_size" json:"page_size"`
	Keyword      string `form:"keyword" json:"keyword"`
	DocumentType string `form:"document_type" json:"document_type"`
	Nationality  string `form:"nationality" json:"nationality"`
}

// GuestInfo 客人信息
type GuestInfo struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Phone          string    `json:"phone"`
	BirthDate      string    `json:"birth_date"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	Nationality    string    `json:"nationality"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GuestStatistics 客人预订统计
type GuestStatistics struct {
	GuestID      int64            `json:"guest_id"`
	Reservations map[string]int64 `json:"reservations"`
}

// CreateGuest 创建客人
func (s *GuestService) CreateGuest(ctx context.Context, req *CreateGuestRequest) (*GuestInfo, error) {
	if !models.IsValidDocumentType(req.DocumentType) {
		return nil, errors.ErrInvalidParams.WithMessagef("无效的证件类型: %s", req.DocumentType)
	}
	if !models.IsValidGender(req.Gender) {
		return nil, errors.ErrInvalidParams.WithMessagef("无效的性别: %s", req.Gender)
	}
	if !utils.ValidatePhone(req.Phone) {
		return nil, errors.ErrInvalidParams.WithMessage("无效的电话号码")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.guestRepo.ExistsByDocument(ctx, req.DocumentNumber, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrGuestDocumentTaken
	}

	guest := &models.Guest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		BirthDate:      birthDate,
		Gender:         req.Gender,
		Nationality:    req.Nationality,
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return convertGuestInfo(guest), nil
}

// GetGuest 获取客人详情
func (s *GuestService) GetGuest(ctx context.Context, id int64) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertGuestInfo(guest), nil
}

// GetGuestByDocument 根据证件号获取客人
func (s *GuestService) GetGuestByDocument(ctx context.Context, documentNumber string) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByDocument(ctx, documentNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertGuestInfo(guest), nil
}

// GetGuestList 获取客人列表
func (s *GuestService) GetGuestList(ctx context.Context, req *GuestListRequest) ([]*GuestInfo, int64, error) {
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
	if req.Keyword != "" {
		filters["keyword"] = req.Keyword
	}
	if req.DocumentType != "" {
		filters["document_type"] = req.DocumentType
	}
	if req.Nationality != "" {
		filters["nationality"] = req.Nationality
	}

	guests, total, err := s.guestRepo.List(ctx, offset, req.PageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*GuestInfo, 0, len(guests))
	for _, guest := range guests {
		result = append(result, convertGuestInfo(guest))
	}
	return result, total, nil
}

// UpdateGuest 更新客人
func (s *GuestService) UpdateGuest(ctx context.Context, id int64, req *UpdateGuestRequest) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.DocumentType != nil {
		if !models.IsValidDocumentType(*req.DocumentType) {
			return nil, errors.ErrInvalidParams.WithMessagef("无效的证件类型: %s", *req.DocumentType)
		}
		guest.DocumentType = *req.DocumentType
	}
	if req.Gender != nil {
		if !models.IsValidGender(*req.Gender) {
			return nil, errors.ErrInvalidParams.WithMessagef("无效的性别: %s", *req.Gender)
		}
		guest.Gender = *req.Gender
	}
	if req.Phone != nil {
		if !utils.ValidatePhone(*req.Phone) {
			return nil, errors.ErrInvalidParams.WithMessage("无效的电话号码")
		}
		guest.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		guest.BirthDate = birthDate
	}
	if req.DocumentNumber != nil && *req.DocumentNumber != guest.DocumentNumber {
		exists, err := s.guestRepo.ExistsByDocument(ctx, *req.DocumentNumber, id)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrGuestDocumentTaken
		}
		guest.DocumentNumber = *req.DocumentNumber
	}
	if req.FirstName != nil {
		guest.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		guest.LastName = *req.LastName
	}
	if req.Nationality != nil {
		guest.Nationality = *req.Nationality
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertGuestInfo(guest), nil
}

// DeleteGuest 删除客人，存在预订关联时拒绝
func (s *GuestService) DeleteGuest(ctx context.Context, id int64) error {
	if _, err := s.guestRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrGuestNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	count, err := s.guestRepo.CountReservationLinks(ctx, id)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if count > 0 {
		return errors.ErrGuestHasReservations
	}

	if err := s.guestRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetGuestStatistics 获取客人预订统计
func (s *GuestService) GetGuestStatistics(ctx context.Context, id int64) (*GuestStatistics, error) {
	if _, err := s.guestRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	stats, err := s.guestRepo.GetStatistics(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return &GuestStatistics{GuestID: id, Reservations: stats}, nil
}

// parseBirthDate 解析出生日期，不允许未来日期，且按整周岁校验成年
// 满18周岁生日当天即视为成年
func parseBirthDate(s string) (time.Time, error) {
	birthDate, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.ErrInvalidParams.WithMessage("出生日期格式应为 YYYY-MM-DD")
	}
	if birthDate.After(time.Now()) {
		return time.Time{}, errors.ErrInvalidParams.WithMessage("出生日期不能是未来")
	}
	if utils.Age(birthDate) < models.MinGuestAge {
		return time.Time{}, errors.ErrGuestUnderage
	}
	return birthDate, nil
}

// convertGuestInfo 转换客人信息
func convertGuestInfo(guest *models.Guest) *GuestInfo {
	return &GuestInfo{
		ID:             guest.ID,
		FirstName:      guest.FirstName,
		LastName:       guest.LastName,
		FullName:       guest.FullName(),
		DocumentType:   guest.DocumentType,
		DocumentNumber: guest.DocumentNumber,
		Phone:          guest.Phone,
		BirthDate:      guest.BirthDate.Format("2006-01-02"),
		Age:            utils.Age(guest.BirthDate),
		Gender:         guest.Gender,
		Nationality:    guest.Nationality,
		CreatedAt:      guest.CreatedAt,
		UpdatedAt:      guest.UpdatedAt,
	}
}

package models

import (
	"time"
)

// Reservation 预订模型
type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationCode string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"reservation_code"`
	HotelID         int64     `gorm:"index;not null" json:"hotel_id"`
	RoomID          int64     `gorm:"index;not null" json:"room_id"`
	GuestID         int64     `gorm:"index;not null" json:"guest_id"`
	CheckInDate     time.Time `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate    time.Time `gorm:"type:date;not null" json:"check_out_date"`
	GuestCount      int       `gorm:"not null;default:1" json:"guest_count"`
	TotalPrice      float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Notes           *string   `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel  *Hotel             `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Room   *Room              `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guest  *Guest             `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Guests []ReservationGuest `gorm:"foreignKey:ReservationID" json:"guests,omitempty"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservations"
}

// ReservationStatus 预订状态
const (
	ReservationStatusPending   = "PENDING"   // 待确认
	ReservationStatusConfirmed = "CONFIRMED" // 已确认
	ReservationStatusCancelled = "CANCELLED" // 已取消
)

// ActiveReservationStatuses 占用房间日期的预订状态
var ActiveReservationStatuses = []string{
	ReservationStatusPending,
	ReservationStatusConfirmed,
}

// IsValidReservationStatus 检查预订状态是否合法
func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// IsActive 是否为占用房间日期的有效预订
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// Nights 入住晚数
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// ReservationGuest 预订客人关联模型
type ReservationGuest struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID int64     `gorm:"not null;uniqueIndex:uk_reservation_guest,priority:1" json:"reservation_id"`
	GuestID       int64     `gorm:"not null;index;uniqueIndex:uk_reservation_guest,priority:2" json:"guest_id"`
	IsTitular     bool      `gorm:"not null;default:false" json:"is_titular"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Guest       *Guest       `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

// TableName 表名
func (ReservationGuest) TableName() string {
	return "reservation_guests"
}

// 预订人数范围
const (
	ReservationMinGuestCount = 1
	ReservationMaxGuestCount = 10
)

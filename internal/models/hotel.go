package models

import (
	"time"
)

// Hotel 酒店模型
type Hotel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	City      string    `gorm:"type:varchar(50);not null;index" json:"city"`
	TaxID     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"tax_id"`
	RoomCount int       `gorm:"not null" json:"room_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Rooms        []Room        `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:HotelID" json:"reservations,omitempty"`
}

// TableName 表名
func (Hotel) TableName() string {
	return "hotels"
}

// 酒店房间数申报范围
const (
	HotelMinRoomCount = 1
	HotelMaxRoomCount = 1000
)

// Room 房间模型
type Room struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;" json:"id"`
	HotelID    int64     `gorm:"not null;index;uniqueIndex:uk_hotel_room_no,priority:1;uniqueIndex:uk_hotel_type_occupancy,priority:1" json:"hotel_id"`
	RoomNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uk_hotel_room_no,priority:2" json:"room_number"`
	RoomType   string    `gorm:"type:varchar(20);not null;uniqueIndex:uk_hotel_type_occupancy,priority:2" json:"room_type"`
	Occupancy  string    `gorm:"type:varchar(20);not null;uniqueIndex:uk_hotel_type_occupancy,priority:3" json:"occupancy"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	Available  bool      `gorm:"not null" json:"available"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel        *Hotel        `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:RoomID" json:"reservations,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomType 房间类型
const (
	RoomTypeStandard = "STANDARD" // 标准间
	RoomTypeJunior   = "JUNIOR"   // 初级套房
	RoomTypeSuite    = "SUITE"    // 套房
)

// RoomOccupancy 入住规格
const (
	OccupancySingle    = "SINGLE"    // 单人
	OccupancyDouble    = "DOUBLE"    // 双人
	OccupancyTriple    = "TRIPLE"    // 三人
	OccupancyQuadruple = "QUADRUPLE" // 四人
)

// ValidRoomTypes 合法的房间类型集合
var ValidRoomTypes = []string{RoomTypeStandard, RoomTypeJunior, RoomTypeSuite}

// ValidOccupancies 合法的入住规格集合
var ValidOccupancies = []string{OccupancySingle, OccupancyDouble, OccupancyTriple, OccupancyQuadruple}

// occupancyCapacity 入住规格对应的人数上限
var occupancyCapacity = map[string]int{
	OccupancySingle:    1,
	OccupancyDouble:    2,
	OccupancyTriple:    3,
	OccupancyQuadruple: 4,
}

// IsValidRoomType 检查房间类型是否合法
func IsValidRoomType(roomType string) bool {
	for _, t := range ValidRoomTypes {
		if t == roomType {
			return true
		}
	}
	return false
}

// IsValidOccupancy 检查入住规格是否合法
func IsValidOccupancy(occupancy string) bool {
	_, ok := occupancyCapacity[occupancy]
	return ok
}

// OccupancyCapacity 获取入住规格允许的最大人数
func OccupancyCapacity(occupancy string) int {
	return occupancyCapacity[occupancy]
}

package models

import (
	"time"
)

// Guest 客人模型
type Guest struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(50);not null" json:"last_name"`
	DocumentType   string    `gorm:"type:varchar(20);not null" json:"document_type"`
	DocumentNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"document_number"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	BirthDate      time.Time `gorm:"type:date;not null" json:"birth_date"`
	Gender         string    `gorm:"type:varchar(1);not null" json:"gender"`
	Nationality    string    `gorm:"type:varchar(50);not null" json:"nationality"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Reservations []Reservation `gorm:"foreignKey:GuestID" json:"reservations,omitempty"`
}

// TableName 表名
func (Guest) TableName() string {
	return "guests"
}

// FullName 姓名全称
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// DocumentType 证件类型
const (
	DocumentTypeNationalID = "NATIONAL_ID" // 本国身份证
	DocumentTypeForeignID  = "FOREIGN_ID"  // 外国人证件
	DocumentTypeMinorID    = "MINOR_ID"    // 未成年人证件
	DocumentTypePassport   = "PASSPORT"    // 护照
	DocumentTypeTaxID      = "TAX_ID"      // 税务登记号
)

// Gender 性别
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// ValidDocumentTypes 合法的证件类型集合
var ValidDocumentTypes = []string{
	DocumentTypeNationalID,
	DocumentTypeForeignID,
	DocumentTypeMinorID,
	DocumentTypePassport,
	DocumentTypeTaxID,
}

// ValidGenders 合法的性别集合
var ValidGenders = []string{GenderMale, GenderFemale, GenderOther}

// IsValidDocumentType 检查证件类型是否合法
func IsValidDocumentType(documentType string) bool {
	for _, t := range ValidDocumentTypes {
		if t == documentType {
			return true
		}
	}
	return false
}

// IsValidGender 检查性别是否合法
func IsValidGender(gender string) bool {
	for _, g := range ValidGenders {
		if g == gender {
			return true
		}
	}
	return false
}

// MinGuestAge 预订客人最低年龄
const MinGuestAge = 18

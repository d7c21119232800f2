package models

import (
	"time"

	"gorm.io/gorm"
)

// Guest is a hotel guest. Email and CPF are unique among live rows only;
// the partial indexes let a soft-deleted guest's email/CPF be reused.
type Guest struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	CPF       string         `gorm:"size:11;not null;uniqueIndex:idx_guests_cpf,where:deleted_at IS NULL" json:"cpf"`
	Email     string         `gorm:"size:100;not null;uniqueIndex:idx_guests_email,where:deleted_at IS NULL" json:"email"`
	Phone     *string        `gorm:"size:15" json:"phone,omitempty"`
	Address   *string        `gorm:"size:200" json:"address,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Guest) TableName() string {
	return "guests"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FaqEntry struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string                      `gorm:"type:text;not null"`
	Answer    string                      `gorm:"type:text;not null"`
	Category  string                      `gorm:"type:varchar(100);not null;default:'general';index"`
	Keywords  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt              `gorm:"index"`
}

func (FaqEntry) TableName() string {
	return "faq_entries"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type FaqEntry struct {
	Id        uuid.UUID
	Question  string
	Answer    string
	Category  string
	Keywords  []string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

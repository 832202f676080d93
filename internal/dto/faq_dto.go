package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	Question  string `json:"question" validate:"required,notblank,max=2000"`
	SessionId string `json:"session_id" validate:"omitempty,max=255"`
}

type AskResponse struct {
	Answer       string                   `json:"answer"`
	Success      bool                     `json:"success"`
	Sources      []map[string]interface{} `json:"sources"`
	SearchMethod string                   `json:"search_method"`
	Threshold    float64                  `json:"similarity_threshold"`
	SessionId    string                   `json:"session_id"`
}

type FaqEntryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Category  string     `json:"category"`
	Keywords  []string   `json:"keywords"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateFaqRequest struct {
	Question string   `json:"question" validate:"required,notblank"`
	Answer   string   `json:"answer" validate:"required,notblank"`
	Category string   `json:"category" validate:"omitempty,max=100"`
	Keywords []string `json:"keywords" validate:"max=20"`
}

type CreateFaqResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListFaqsResponse struct {
	Faqs  []*FaqEntryResponse `json:"faqs"`
	Count int                 `json:"count"`
}

package dto

import "time"

type DiscoveryRequest struct {
	Question  string `json:"question" validate:"required,notblank,max=2000"`
	SessionId string `json:"session_id" validate:"omitempty,max=255"`
}

type ActionDTO struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type ProfileDTO struct {
	Profile           string   `json:"profile"`
	Needs             []string `json:"needs"`
	Readiness         string   `json:"readiness"`
	ConversationCount int      `json:"conversation_count"`
	EngagementScore   int      `json:"engagement_score"`
}

type DiscoveryResponse struct {
	Response   string      `json:"response"`
	Actions    []ActionDTO `json:"actions"`
	Success    bool        `json:"success"`
	Stage      string      `json:"stage"`
	QueryCount int         `json:"query_count"`
	Profile    ProfileDTO  `json:"user_profile"`
	SessionId  string      `json:"session_id"`
}

type ChatTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatHistoryResponse struct {
	SessionId string        `json:"session_id"`
	Turns     []ChatTurnDTO `json:"turns"`
}

type ChatMessageDTO struct {
	UserMessage      string                 `json:"user_message"`
	BotResponse      string                 `json:"bot_response"`
	KnowledgeSources map[string]interface{} `json:"knowledge_sources"`
	CreatedAt        time.Time              `json:"created_at"`
}

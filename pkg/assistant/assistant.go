// Package assistant holds the types shared by the answer ladder, the
// engagement tracker and the discovery orchestrator.
package assistant

import (
	"context"
	"errors"
	"strings"

	"huddleup-faq-be/pkg/llm"
)

var ErrEmptyQuestion = errors.New("question must not be empty")

func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one side of a stored exchange, oldest first.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SourceTag records which collaborator produced an answer. "type" is always set.
type SourceTag map[string]interface{}

func NewSourceTag(kind string, fields map[string]interface{}) SourceTag {
	tag := SourceTag{"type": kind}
	for k, v := range fields {
		if k == "type" {
			continue
		}
		tag[k] = v
	}
	return tag
}

func (s SourceTag) Type() string {
	kind, _ := s["type"].(string)
	return kind
}

// Interaction is a question/answer pair ready to be persisted.
type Interaction struct {
	SessionID string
	Question  string
	Answer    string
	Sources   []SourceTag
	Strategy  string
	// Extra is merged into the stored knowledge_sources document.
	Extra map[string]interface{}
}

// KnowledgeSources is the JSON document stored next to the chat row.
func (i Interaction) KnowledgeSources() map[string]interface{} {
	doc := make(map[string]interface{}, len(i.Extra)+2)
	for k, v := range i.Extra {
		doc[k] = v
	}
	sources := i.Sources
	if sources == nil {
		sources = []SourceTag{}
	}
	doc["sources"] = sources
	doc["method"] = i.Strategy
	return doc
}

type InteractionRecorder interface {
	SaveInteraction(ctx context.Context, interaction Interaction) error
}

type HistoryReader interface {
	History(ctx context.Context, sessionID string) ([]Turn, error)
}

// Completer is the slice of llm.LLMProvider the assistant needs.
type Completer interface {
	Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
}

// UserText joins every user authored turn with single spaces.
func UserText(turns []Turn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Role == RoleUser {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, " ")
}

// CountQueries is the number of user turns.
func CountQueries(turns []Turn) int {
	n := 0
	for _, t := range turns {
		if t.Role == RoleUser {
			n++
		}
	}
	return n
}

package engagement

import (
	"context"
	"strings"

	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/pkg/assistant"
)

const module = "ENGAGEMENT"

const (
	ReadinessDiscovery  = "discovery"
	ReadinessInterested = "interested"
	ReadinessEvaluating = "evaluating"
	ReadinessReady      = "ready"

	ProfileNewVisitor = "new_visitor"
	ProfileUnknown    = "unknown"
	ProfileGeneral    = "general"
)

// minTurnsForAnalysis is the number of stored user turns needed before
// keyword scoring is attempted.
const minTurnsForAnalysis = 2

type Profile struct {
	Label             string   `json:"profile"`
	Needs             []string `json:"needs"`
	Readiness         string   `json:"readiness"`
	ConversationCount int      `json:"conversation_count"`
	EngagementScore   int      `json:"engagement_score"`
}

func NewVisitorProfile(turnCount int) Profile {
	return Profile{
		Label:             ProfileNewVisitor,
		Needs:             []string{},
		Readiness:         ReadinessDiscovery,
		ConversationCount: turnCount,
		EngagementScore:   engagementScore(turnCount),
	}
}

// UnknownProfile is used when history cannot be read.
func UnknownProfile() Profile {
	return Profile{Label: ProfileUnknown, Needs: []string{}, Readiness: ReadinessDiscovery}
}

func engagementScore(turnCount int) int {
	return min(turnCount*10, 100)
}

// Analyze derives a profile from a full history. It is a pure function of turns.
func Analyze(turns []assistant.Turn) Profile {
	count := assistant.CountQueries(turns)
	if count < minTurnsForAnalysis {
		return NewVisitorProfile(count)
	}

	text := strings.ToLower(assistant.UserText(turns))

	return Profile{
		Label:             best(profileIndicators, text, ProfileGeneral),
		Needs:             matching(needIndicators, text),
		Readiness:         best(readinessIndicators, text, ReadinessDiscovery),
		ConversationCount: count,
		EngagementScore:   engagementScore(count),
	}
}

type Tracker struct {
	history assistant.HistoryReader
	logger  logger.ILogger
}

func NewTracker(history assistant.HistoryReader, log logger.ILogger) *Tracker {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Tracker{history: history, logger: log}
}

// AnalyzeProfile reads the session history and scores it. Read failures
// yield UnknownProfile rather than an error.
func (t *Tracker) AnalyzeProfile(ctx context.Context, sessionID string) Profile {
	_, profile := t.Snapshot(ctx, sessionID)
	return profile
}

// Snapshot returns the history together with the profile derived from it.
// Without a history store the profile is UnknownProfile; a session with no
// id has no history and is a new visitor.
func (t *Tracker) Snapshot(ctx context.Context, sessionID string) ([]assistant.Turn, Profile) {
	if t.history == nil {
		return nil, UnknownProfile()
	}
	if sessionID == "" {
		return nil, NewVisitorProfile(0)
	}

	turns, err := t.history.History(ctx, sessionID)
	if err != nil {
		t.logger.Warn(module, "Could not load conversation history", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
		return nil, UnknownProfile()
	}

	profile := Analyze(turns)
	t.logger.Debug(module, "Profile analyzed", map[string]interface{}{
		"session_id": sessionID,
		"profile":    profile.Label,
		"readiness":  profile.Readiness,
		"turns":      profile.ConversationCount,
	})
	return turns, profile
}

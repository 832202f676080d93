package engagement

type Stage string

const (
	StageInitial Stage = "initial"
	StageFull    Stage = "full"
)

// FullStageQueries is the user turn count that unlocks the whole catalog.
const FullStageQueries = 5

// StageFor is recomputed from history on every call, so it can only move forward.
func StageFor(queryCount int) Stage {
	if queryCount < FullStageQueries {
		return StageInitial
	}
	return StageFull
}

type ActionType string

const (
	ActionCalendar        ActionType = "calendar"
	ActionSolutionPreview ActionType = "solution_preview"
	ActionProcessAnalysis ActionType = "process_analysis"
	ActionResearch        ActionType = "research"
	ActionQuestions       ActionType = "questions"
)

type Action struct {
	Type        ActionType `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

var catalog = map[ActionType]Action{
	ActionCalendar: {
		Type:        ActionCalendar,
		Label:       "Find a time to meet with Derek",
		Description: "Schedule a personalized demo with our learning collaboration expert",
	},
	ActionSolutionPreview: {
		Type:        ActionSolutionPreview,
		Label:       "Explore HuddleUp Solution Preview",
		Description: "See a tailored preview of how HuddleUp works for your specific needs",
	},
	ActionProcessAnalysis: {
		Type:        ActionProcessAnalysis,
		Label:       "See how your processes could work in HuddleUp",
		Description: "Discover specific improvements for your current workflows",
	},
	ActionResearch: {
		Type:        ActionResearch,
		Label:       "Receive research on HuddleUp benefits",
		Description: "Get data on problems HuddleUp solves in your industry",
	},
	ActionQuestions: {
		Type:        ActionQuestions,
		Label:       "Ask more questions",
		Description: "Continue exploring HuddleUp features and capabilities",
	},
}

var initialOrder = []ActionType{ActionSolutionPreview, ActionQuestions}

// fullOrders is keyed by readiness; unknown readiness uses the discovery order.
var fullOrders = map[string][]ActionType{
	ReadinessDiscovery:  {ActionCalendar, ActionSolutionPreview, ActionProcessAnalysis, ActionResearch, ActionQuestions},
	ReadinessReady:      {ActionCalendar, ActionSolutionPreview, ActionProcessAnalysis, ActionResearch, ActionQuestions},
	ReadinessEvaluating: {ActionProcessAnalysis, ActionSolutionPreview, ActionResearch, ActionCalendar, ActionQuestions},
	ReadinessInterested: {ActionResearch, ActionSolutionPreview, ActionProcessAnalysis, ActionCalendar, ActionQuestions},
}

func Lookup(t ActionType) (Action, bool) {
	a, ok := catalog[t]
	return a, ok
}

func CatalogSize() int {
	return len(catalog)
}

func order(stage Stage, readiness string) []ActionType {
	if stage == StageInitial {
		return initialOrder
	}
	if o, ok := fullOrders[readiness]; ok {
		return o
	}
	return fullOrders[ReadinessDiscovery]
}

// Allowed reports whether stage may offer action type t.
func Allowed(stage Stage, t ActionType) bool {
	for _, allowed := range order(stage, ReadinessDiscovery) {
		if allowed == t {
			return true
		}
	}
	return false
}

// DefaultActions is the stage-appropriate action list, ordered for readiness.
func DefaultActions(stage Stage, readiness string) []Action {
	types := order(stage, readiness)
	out := make([]Action, 0, len(types))
	for _, t := range types {
		out = append(out, catalog[t])
	}
	return out
}

// Lead is the action a full-stage list must start with for readiness, if any.
func Lead(stage Stage, readiness string) (ActionType, bool) {
	if stage != StageFull || readiness == ReadinessDiscovery {
		return "", false
	}
	o, ok := fullOrders[readiness]
	if !ok {
		return "", false
	}
	return o[0], true
}

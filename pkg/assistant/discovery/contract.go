package discovery

import (
	"encoding/json"
	"errors"
	"strings"

	"huddleup-faq-be/pkg/assistant/engagement"
)

var errNotJSON = errors.New("discovery: completion is not a JSON object")

// completionReply is the loosely typed JSON the completer is asked to return.
type completionReply struct {
	Response   string
	HasActions bool
	Actions    []engagement.Action
}

type rawAction struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// parseReply decodes the completer's text. Only a non-object payload is an
// error; missing or mistyped fields are reported as absent.
func parseReply(text string) (completionReply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(text)), &fields); err != nil || fields == nil {
		return completionReply{}, errNotJSON
	}

	var reply completionReply

	if raw, ok := fields["response"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			reply.Response = strings.TrimSpace(s)
		}
	}

	if raw, ok := fields["actions"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil && items != nil {
			reply.HasActions = true
			reply.Actions = decodeActions(items)
		}
	}

	return reply, nil
}

// decodeActions accepts objects with a "type" or bare type strings and maps
// them onto the catalog. Unknown types are dropped.
func decodeActions(items []json.RawMessage) []engagement.Action {
	out := make([]engagement.Action, 0, len(items))
	for _, item := range items {
		var typ string
		var obj rawAction
		switch {
		case json.Unmarshal(item, &obj) == nil && obj.Type != "":
			typ = obj.Type
		case json.Unmarshal(item, &typ) == nil:
		default:
			continue
		}
		if a, ok := engagement.Lookup(engagement.ActionType(strings.ToLower(strings.TrimSpace(typ)))); ok {
			out = append(out, a)
		}
	}
	return out
}

// stripFences removes a ```json ... ``` wrapper some models add in JSON mode.
func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "```"))
}

func dedupe(actions []engagement.Action) []engagement.Action {
	seen := make(map[engagement.ActionType]bool, len(actions))
	out := make([]engagement.Action, 0, len(actions))
	for _, a := range actions {
		if seen[a.Type] {
			continue
		}
		seen[a.Type] = true
		out = append(out, a)
	}
	return out
}

// selectActions turns whatever the completer suggested into the list shown
// to the user.
func selectActions(reply completionReply, stage engagement.Stage, readiness string) []engagement.Action {
	defaults := engagement.DefaultActions(stage, readiness)
	if !reply.HasActions {
		return defaults
	}

	var kept []engagement.Action
	for _, a := range dedupe(reply.Actions) {
		if engagement.Allowed(stage, a.Type) {
			kept = append(kept, a)
		}
	}

	if stage == engagement.StageInitial {
		if len(kept) == 0 {
			return defaults
		}
		return ensure(kept, engagement.ActionQuestions)
	}

	// full stage: a short list means the completer under-delivered
	if len(kept) <= 2 {
		return defaults
	}
	for _, a := range defaults {
		kept = ensure(kept, a.Type)
	}
	if lead, ok := engagement.Lead(stage, readiness); ok {
		kept = moveToFront(kept, lead)
	}
	return kept
}

func ensure(actions []engagement.Action, t engagement.ActionType) []engagement.Action {
	for _, a := range actions {
		if a.Type == t {
			return actions
		}
	}
	a, _ := engagement.Lookup(t)
	return append(actions, a)
}

func moveToFront(actions []engagement.Action, t engagement.ActionType) []engagement.Action {
	for i, a := range actions {
		if a.Type != t {
			continue
		}
		out := make([]engagement.Action, 0, len(actions))
		out = append(out, a)
		out = append(out, actions[:i]...)
		return append(out, actions[i+1:]...)
	}
	return actions
}

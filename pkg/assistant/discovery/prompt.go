package discovery

import (
	"fmt"
	"strings"

	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/assistant/engagement"
	"huddleup-faq-be/pkg/llm"
)

// contextWindow bounds how many prior turns go into the prompt.
const contextWindow = 4

func recentTurns(turns []assistant.Turn) []assistant.Turn {
	if len(turns) <= contextWindow {
		return turns
	}
	return turns[len(turns)-contextWindow:]
}

func describeActions(actions []engagement.Action) string {
	var b strings.Builder
	for _, a := range actions {
		fmt.Fprintf(&b, "- {\"type\": %q, \"label\": %q, \"description\": %q}\n", a.Type, a.Label, a.Description)
	}
	return b.String()
}

func buildMessages(question string, turns []assistant.Turn, profile engagement.Profile, queryCount int, stage engagement.Stage) []llm.Message {
	var b strings.Builder

	b.WriteString("You are the HuddleUp AI Assistant conducting discovery conversations about learning collaboration.\n\n")

	if recent := recentTurns(turns); len(recent) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, t := range recent {
			who := "User"
			if t.Role == assistant.RoleAssistant {
				who = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", who, t.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User Profile Analysis:\n- Role/Type: %s\n- Detected Needs: %s\n- Readiness Level: %s\n- Conversation Count: %d\n- Engagement Score: %d\n\n",
		profile.Label, strings.Join(profile.Needs, ", "), profile.Readiness, profile.ConversationCount, profile.EngagementScore)

	fmt.Fprintf(&b, "ENGAGEMENT PROGRESSION:\n- Query Count: %d\n- Engagement Level: %s\n\n", queryCount, stage)

	b.WriteString("Tailor the answer to the visitor's role, ask ONE focused follow-up question, keep it to 2-3 short paragraphs ")
	b.WriteString("and never be pushy.\n\n")

	b.WriteString("AVAILABLE ACTIONS FOR THIS STAGE:\n")
	b.WriteString(describeActions(engagement.DefaultActions(stage, profile.Readiness)))
	b.WriteString("Always include \"questions\".\n\n")

	b.WriteString("Return ONLY a JSON object with exactly two fields:\n")
	b.WriteString(`{"response": "your reply text", "actions": [action objects from the list above]}`)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: b.String()},
		{Role: llm.RoleUser, Content: question},
	}
}

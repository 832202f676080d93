package resolver

import (
	"fmt"
	"strings"

	"huddleup-faq-be/pkg/llm"
)

const directSystemPrompt = `You are the HuddleUp AI Assistant, a discovery agent for HuddleUp's learning collaboration platform.

HuddleUp creates "learning huddles": interactive spaces where teams learn together. It offers interactive learning
with higher engagement, better retention through peer collaboration, training that scales with the team, and
analytics on learning progress.

Ask about the visitor's role and learning or collaboration challenges, connect their situation to relevant HuddleUp
benefits, and ask ONE follow-up question at a time. Keep answers to 2-3 short paragraphs.`

const enhanceSystemPrompt = `You are an AI assistant for HuddleUp. You receive a question and a relevant answer from the knowledge base.
Return the answer as-is or lightly improved for clarity and tone. Keep the core information, never contradict it,
and do not invent product features or pricing. Keep it concise (1-3 short paragraphs or a few bullet points).`

func directMessages(question string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: directSystemPrompt},
		{Role: llm.RoleUser, Content: question},
	}
}

func enhancementMessages(question, answer string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: enhanceSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("User Question: %s\n\nKnowledge Base Answer: %s\n\n"+
			"Please provide an enhanced response that addresses the user's question using the knowledge base information.",
			question, answer)},
	}
}

func guidedMessages(question string, found int, topScores []float64) []llm.Message {
	scores := make([]string, len(topScores))
	for i, s := range topScores {
		scores[i] = fmt.Sprintf("%.2f", s)
	}
	hint := fmt.Sprintf("Our semantic search found %d relevant matches in the knowledge base (top similarities: %s). "+
		"The question is about a topic we cover; give a helpful, specific answer about HuddleUp.",
		found, strings.Join(scores, ", "))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: directSystemPrompt + "\n\n" + hint},
		{Role: llm.RoleUser, Content: question},
	}
}

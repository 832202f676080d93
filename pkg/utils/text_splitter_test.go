package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	got := Sentences("HuddleUp is community-first. Does it integrate with Slack? Yes!  And Zoom")
	assert.Equal(t, []string{
		"HuddleUp is community-first.",
		"Does it integrate with Slack?",
		"Yes!",
		"And Zoom",
	}, got)

	assert.Empty(t, Sentences("   "))
}

func TestSplitSentences(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine."

	t.Run("packs sentences up to the limit", func(t *testing.T) {
		chunks := SplitSentences(text, 30)
		assert.Equal(t, []string{"One two three. Four five six.", "Seven eight nine."}, chunks)
	})

	t.Run("long sentence stands alone", func(t *testing.T) {
		long := strings.Repeat("a", 40) + "."
		chunks := SplitSentences("Short. "+long+" Tail.", 10)
		assert.Equal(t, []string{"Short.", long, "Tail."}, chunks)
	})

	t.Run("no limit keeps one chunk", func(t *testing.T) {
		assert.Equal(t, []string{text}, SplitSentences(text, 0))
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, SplitSentences("", 100))
	})
}

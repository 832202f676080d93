package utils

import (
	"regexp"
	"strings"
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Sentences splits text on terminal punctuation. Trailing text without
// punctuation is kept as a final sentence.
func Sentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// SplitSentences packs whole sentences into chunks of at most maxChars
// runes. A single sentence longer than maxChars becomes its own chunk.
func SplitSentences(text string, maxChars int) []string {
	sentences := Sentences(text)
	if maxChars <= 0 {
		if len(sentences) == 0 {
			return nil
		}
		return []string{strings.Join(sentences, " ")}
	}

	var chunks []string
	var current strings.Builder
	size := 0
	for _, s := range sentences {
		n := len([]rune(s))
		if size > 0 && size+1+n > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(s)
		size += n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

package generator

import (
	"context"
	"strings"
)

// MockLLM returns canned lyrics for local runs without calling a provider.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	topic := strings.TrimPrefix(prompt.User, LyricsPrefix)
	var sb strings.Builder
	sb.WriteString("**Verse 1:**\n")
	sb.WriteString("Rolling through the night with " + topic + " on my mind\n")
	sb.WriteString("Every bar I write is a sign of the times\n\n")
	sb.WriteString("**Hook:**\n")
	sb.WriteString(topic + ", yeah, that's the story I tell\n")
	sb.WriteString("Mock beat on repeat, ringing like a bell\n")
	return sb.String(), nil
}

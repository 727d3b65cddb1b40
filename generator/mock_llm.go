package generator

import (
	"context"
	"strings"
)

// MockLLM is a canned client for local runs without API access.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if strings.Contains(prompt.User, "title") {
		return "The Quiet Rise of Boring Technology", nil
	}

	var sb strings.Builder
	sb.WriteString("Every few years the industry rediscovers the same lesson: the tools that change how we work are rarely the flashiest ones. ")
	sb.WriteString("They are the quiet, dependable systems that fade into the background while everything built on top of them speeds up.\n\n")
	sb.WriteString("## Why reliability wins\n\n")
	sb.WriteString("Teams that bet on proven technology ship faster because they spend their attention on the problem, not the platform. ")
	sb.WriteString("A database that never surprises you is worth more than a framework that demos well.\n\n")
	sb.WriteString("## What to do with this\n\n")
	sb.WriteString("Pick one piece of your stack that keeps waking you up at night and replace it with the most boring alternative you can find. ")
	sb.WriteString("Measure the difference a month later.\n\n")
	sb.WriteString("What is the most boring tool you rely on every day?")
	return sb.String(), nil
}

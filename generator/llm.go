package generator

import (
	"context"
	"fmt"
)

// LLMClient abstracts the chat model so implementations can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries what a concrete client needs to reach the provider.
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
}

// QuotaError marks a provider refusal that retrying cannot fix.
// Clients return it so callers can stop instead of burning attempts.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string { return fmt.Sprintf("quota exceeded: %v", e.Err) }

func (e *QuotaError) Unwrap() error { return e.Err }

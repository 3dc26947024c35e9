// Package mock provides a scripted execution.ModelClient for tests and
// examples — never auto-registered, always constructed explicitly.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/execution"
)

// Client is a scripted model client: each call to Generate returns the next
// entry from Responses (or repeats the last one), or fails with Err if set.
type Client struct {
	modelID string

	mu         sync.Mutex
	Responses  []execution.GenerationResult
	callIndex  int
	Err        error
	Delay      func(ctx context.Context) error // optional hook to simulate latency/cancellation
	CallCount  int
	LastPrompt string
}

// NewClient builds a mock client identified by modelID, returning content on
// every call.
func NewClient(modelID string, content string) *Client {
	return &Client{
		modelID:   modelID,
		Responses: []execution.GenerationResult{{Content: content, Confidence: 0.9, TokenUsage: 42, FinishReason: "stop"}},
	}
}

// ModelID implements execution.ModelClient.
func (c *Client) ModelID() string { return c.modelID }

// Generate implements execution.ModelClient.
func (c *Client) Generate(ctx context.Context, prompt string, opts execution.GenerationOptions) (execution.GenerationResult, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastPrompt = prompt
	mockErr := c.Err
	var result execution.GenerationResult
	if len(c.Responses) > 0 {
		idx := c.callIndex
		if idx >= len(c.Responses) {
			idx = len(c.Responses) - 1
		}
		result = c.Responses[idx]
		c.callIndex++
	}
	c.mu.Unlock()

	if c.Delay != nil {
		if err := c.Delay(ctx); err != nil {
			return execution.GenerationResult{}, err
		}
	}

	select {
	case <-ctx.Done():
		return execution.GenerationResult{}, ctx.Err()
	default:
	}

	if mockErr != nil {
		return execution.GenerationResult{}, mockErr
	}
	return result, nil
}

// FailWith builds a client whose Generate always returns err, wrapped with
// the given taxonomy kind so callers can exercise fallback paths.
func FailWith(modelID string, kind string, err error) *Client {
	return &Client{
		modelID: modelID,
		Err:     core.NewFrameworkError(fmt.Sprintf("mock.%s", modelID), kind, err),
	}
}

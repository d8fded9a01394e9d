package mocks

import (
	"context"
	"sync"

	"briefy/internal/models"
)

type AIGatewayMock struct {
	InvokeFunc func(ctx context.Context, prompt string, media *models.InlineMedia) (string, error)

	mu      sync.Mutex
	Prompts []string
}

func (m *AIGatewayMock) Invoke(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt, media)
	}
	return "", nil
}

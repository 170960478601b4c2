package runner

import (
	"context"
)

// MockVisionClient scripts per-call answers and errors for tests.
type MockVisionClient struct {
	ModelName string
	Answers   []string
	Errs      []error

	Calls   int
	Prompts []string
}

func (m *MockVisionClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

func (m *MockVisionClient) Answer(ctx context.Context, prompt string, image []byte) (string, error) {
	i := m.Calls
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if i < len(m.Errs) && m.Errs[i] != nil {
		return "", m.Errs[i]
	}
	if i < len(m.Answers) {
		return m.Answers[i], nil
	}
	return "no", nil
}

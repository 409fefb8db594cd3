package interview

import (
	"context"
	"sync"
)

type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	tokens  []int

	response string
	err      error
	block    chan struct{}
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, maxOutputTokens int) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.tokens = append(s.tokens, maxOutputTokens)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	return s.response, s.err
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func (s *stubGenerator) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Request captures one completion call. System carries the governing
// instruction, Prompt the rendered user content.
type Request struct {
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
}

// Response holds the completed text.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface the stages need to drive generation.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and examples.
// Canned responses are matched against prompt substrings in registration
// order; unmatched prompts receive the default response.
type MockModel struct {
	mu         sync.Mutex
	info       Info
	rules      []mockRule
	defaultTxt string
	calls      []Request
}

type mockRule struct {
	substring string
	response  string
}

// NewMockModel constructs a MockModel. The default response for unmatched
// prompts is an echo of the prompt.
func NewMockModel(name string) *MockModel {
	return &MockModel{info: Info{Name: name, Provider: "mock"}}
}

// AddResponse registers a canned completion returned whenever the prompt
// contains substring.
func (m *MockModel) AddResponse(substring, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{substring: substring, response: response})
}

// SetDefault sets the response for prompts no rule matches.
func (m *MockModel) SetDefault(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultTxt = response
}

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	for _, r := range m.rules {
		if r.substring != "" && strings.Contains(req.Prompt, r.substring) {
			return Response{Text: r.response}, nil
		}
	}
	if m.defaultTxt != "" {
		return Response{Text: m.defaultTxt}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Calls returns a copy of all requests seen so far.
func (m *MockModel) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

package engine

import (
	"context"
	"sync"

	"github.com/mazerunner70/housef3/internal/model"
)

// MockPrompter is a test implementation of the Prompter interface. By
// default it confirms every candidate; individual pairs can be scripted to
// be ignored or to fail.
type MockPrompter struct {
	mu        sync.Mutex
	decisions map[string]model.ReviewDecision // keyed by pair key
	failPairs map[string]error
	calls     []model.PendingReview
	confirm   bool
}

// NewMockPrompter creates a mock prompter. When confirmAll is true every
// unscripted candidate is confirmed, otherwise ignored.
func NewMockPrompter(confirmAll bool) *MockPrompter {
	return &MockPrompter{
		decisions: make(map[string]model.ReviewDecision),
		failPairs: make(map[string]error),
		confirm:   confirmAll,
	}
}

// ReviewCandidate records the call and returns the scripted decision.
func (m *MockPrompter) ReviewCandidate(_ context.Context, pending model.PendingReview) (model.ReviewDecision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, pending)

	key := pending.Candidate.PairKey()
	if err, ok := m.failPairs[key]; ok {
		return model.DecisionIgnore, err
	}
	if decision, ok := m.decisions[key]; ok {
		return decision, nil
	}
	if m.confirm {
		return model.DecisionConfirm, nil
	}
	return model.DecisionIgnore, nil
}

// SetDecision scripts the decision for a specific pair key.
func (m *MockPrompter) SetDecision(key string, decision model.ReviewDecision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[key] = decision
}

// SetError scripts a failure for a specific pair key.
func (m *MockPrompter) SetError(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPairs[key] = err
}

// Calls returns all review requests seen so far.
func (m *MockPrompter) Calls() []model.PendingReview {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]model.PendingReview, len(m.calls))
	copy(calls, m.calls)
	return calls
}

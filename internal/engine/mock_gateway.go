package engine

import (
	"context"
	"sync"

	"github.com/mazerunner70/housef3/internal/model"
	"github.com/mazerunner70/housef3/internal/service"
)

// MockGateway is a test implementation of the TransferGateway interface.
// It records committed pairs in memory with the same idempotency contract
// as the real gateway and can be scripted to fail wholesale or per pair.
type MockGateway struct {
	mu          sync.Mutex
	committed   map[string]model.TransferPair // keyed by unordered pair key
	failPairs   map[string]string             // pair key -> failure reason
	commitErr   error
	commitCalls int
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		committed: make(map[string]model.TransferPair),
		failPairs: make(map[string]string),
	}
}

// MarkTransferPairs commits pairs independently, honoring scripted failures.
func (g *MockGateway) MarkTransferPairs(_ context.Context, pairs []model.TransferPair) (*service.CommitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.commitCalls++
	if g.commitErr != nil {
		return nil, g.commitErr
	}

	result := &service.CommitResult{}
	for _, pair := range pairs {
		if reason, ok := g.failPairs[pair.Key()]; ok {
			result.Failed = append(result.Failed, service.FailedPair{Pair: pair, Reason: reason})
			continue
		}
		// Re-committing an existing pair is a no-op success.
		if _, exists := g.committed[pair.Key()]; !exists {
			g.committed[pair.Key()] = pair
		}
		result.Successful = append(result.Successful, pair)
	}
	return result, nil
}

// GetTransferPairs returns committed pairs; the mock ignores the range.
func (g *MockGateway) GetTransferPairs(_ context.Context, _ model.DateRange) ([]model.TransferPair, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pairs := make([]model.TransferPair, 0, len(g.committed))
	for _, pair := range g.committed {
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// SetCommitError makes every MarkTransferPairs call fail wholesale.
func (g *MockGateway) SetCommitError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.commitErr = err
}

// SetPairFailure scripts a per-pair failure reason.
func (g *MockGateway) SetPairFailure(key, reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failPairs[key] = reason
}

// CommittedCount returns the number of distinct pairs persisted.
func (g *MockGateway) CommittedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.committed)
}

// CommitCalls returns how many times MarkTransferPairs was invoked.
func (g *MockGateway) CommitCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.commitCalls
}

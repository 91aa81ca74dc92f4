package mocks

import (
	"context"

	"github.com/phrazzld/tasktrack-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database: the function
// runs with a nil transaction, which the mock stores ignore.
type MockTxRunner struct {
	RunTxFn func(ctx context.Context, fn store.TxFn) error

	RunTxCalls int
}

// RunTx implements store.TxRunner.
func (m *MockTxRunner) RunTx(ctx context.Context, fn store.TxFn) error {
	m.RunTxCalls++
	if m.RunTxFn != nil {
		return m.RunTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}

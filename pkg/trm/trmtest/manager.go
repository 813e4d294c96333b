// Package trmtest provides a transaction manager for tests that runs
// the callback directly, without a database.
package trmtest

import (
	"context"

	"github.com/veloraeats/dispatch-service/pkg/trm"
)

type Manager struct{}

var _ trm.Manager = Manager{}

func (Manager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, noopTx{}, nil
}

func (Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

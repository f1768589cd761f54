package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Transactor runs each fn one at a time with a nil *sqlx.Tx, standing in for
// the row locks a real transaction takes. It counts commits and rollbacks.
type Transactor struct {
	mu        sync.Mutex
	commits   atomic.Int32
	rollbacks atomic.Int32
}

var _ repository.Transactor = (*Transactor)(nil)

func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithTx implements repository.Transactor.
func (t *Transactor) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := fn(nil); err != nil {
		t.rollbacks.Add(1)

		return err
	}

	t.commits.Add(1)

	return nil
}

func (t *Transactor) Commits() int {
	return int(t.commits.Load())
}

func (t *Transactor) Rollbacks() int {
	return int(t.rollbacks.Load())
}

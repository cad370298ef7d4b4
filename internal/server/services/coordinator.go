package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
)

// WriteState is the phase a write operation is in.
type WriteState int

const (
	StateBuilding WriteState = iota
	StateValidating
	StateCommitted
	StateRolledBack
)

func (s WriteState) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateValidating:
		return "validating"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// WriteCoordinator sequences build → flush → commit → refresh for one record
// inside a transaction on the request's session.
type WriteCoordinator struct {
	// observe, when set, sees every state transition.
	observe func(WriteState)
}

func NewWriteCoordinator() *WriteCoordinator {
	return &WriteCoordinator{}
}

func (c *WriteCoordinator) enter(s WriteState) {
	if c != nil && c.observe != nil {
		c.observe(s)
	}
}

// WriteSteps are the record-specific parts of a write.
//
// Build constructs or mutates the record in memory (it may read through tx).
// Flush submits it to the store, which checks constraints. Refresh re-reads
// the committed record through the session.
type WriteSteps[T any] struct {
	Build   func(ctx context.Context, tx dbx.DBTX) (T, error)
	Flush   func(ctx context.Context, tx dbx.DBTX, record T) (T, error)
	Refresh func(ctx context.Context, db dbx.DBTX, record T) (T, error)
}

// Write runs steps against sess. A constraint violation from Flush or Commit
// rolls the transaction back and comes out as *common.ConflictError carrying
// input; any other failure rolls back and is returned unchanged.
func Write[T any](ctx context.Context, c *WriteCoordinator, sess dbx.Session, input any, steps WriteSteps[T]) (T, error) {
	var zero, staged T

	c.enter(StateBuilding)
	err := dbx.WithTx(ctx, sess, nil, func(ctx context.Context, tx dbx.DBTX) error {
		record, err := steps.Build(ctx, tx)
		if err != nil {
			return err
		}

		c.enter(StateValidating)
		staged, err = steps.Flush(ctx, tx, record)
		return err
	})
	if err != nil {
		c.enter(StateRolledBack)
		if errors.Is(err, common.ErrorConstraintViolation) || dbx.IsConstraintViolation(err) {
			return zero, &common.ConflictError{Input: input, Err: err}
		}
		return zero, err
	}

	c.enter(StateCommitted)
	if steps.Refresh == nil {
		return staged, nil
	}
	return steps.Refresh(ctx, sess, staged)
}

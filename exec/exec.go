// Package exec carries the pieces of the scan operator framework that
// scanners consume: per-query runtime state, predicate contexts and the
// scanner lifecycle contract.
package exec

import (
	"context"

	"github.com/youtNa/doris/columnar"
	"github.com/youtNa/doris/descriptor"
)

// RuntimeState is the per-query execution state shared with scanners:
// the query's context, its identity and the descriptor catalog.
type RuntimeState struct {
	ctx     context.Context
	queryID string
	descs   *descriptor.Table
}

func NewRuntimeState(ctx context.Context, queryID string, descs *descriptor.Table) *RuntimeState {
	return &RuntimeState{ctx: ctx, queryID: queryID, descs: descs}
}

func (s *RuntimeState) Context() context.Context { return s.ctx }

func (s *RuntimeState) QueryID() string { return s.queryID }

func (s *RuntimeState) DescriptorTable() *descriptor.Table { return s.descs }

// Cancelled reports the cooperative cancellation signal of the owning
// query. Scanners check it between units of work, never mid-unit.
func (s *RuntimeState) Cancelled() error { return s.ctx.Err() }

// ExprContext is a predicate pushdown context owned by a scan node.
// Scanners clone it on prepare and close their clone on close.
type ExprContext interface {
	Clone(state *RuntimeState) (ExprContext, error)
	Close()
}

// Scanner is the lifecycle contract every scanner implements. Calls are
// sequential and non-reentrant: one scan instance is driven by exactly
// one goroutine.
type Scanner interface {
	Open(state *RuntimeState) error
	Prepare(state *RuntimeState, conjuncts ExprContext) error
	GetNext(state *RuntimeState, block *columnar.Block, eof *bool) error
	Close(state *RuntimeState) error
}

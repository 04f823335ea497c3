// Package scan implements the metadata scanner: a scan-time adapter that
// materializes a remote metadata table (for now, the snapshot history of
// an external table) into the engine's columnar block format.
package scan

import (
	"fmt"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"go.uber.org/zap"

	"github.com/youtNa/doris/columnar"
	"github.com/youtNa/doris/descriptor"
	"github.com/youtNa/doris/exec"
	"github.com/youtNa/doris/frontend"
	"github.com/youtNa/doris/meta"
	"github.com/youtNa/doris/utils"
)

// Params identify the table whose metadata is scanned. They come from
// the plan and are passed to the frontend verbatim.
type Params struct {
	Cluster  string
	Catalog  string
	Database string
	Table    string
}

var _ exec.Scanner = (*MetaScanner)(nil)

// MetaScanner fetches one batch of metadata rows from the frontend and
// drains it into destination columns. The lifecycle is one-shot: a
// single fetch on prepare, a single convert pass on the first get-next
// call, end-of-stream after that. All calls happen on one goroutine.
type MetaScanner struct {
	logger *zap.Logger
	client frontend.Client
	alloc  memory.Allocator

	params    Params
	tupleID   int64
	scanRange *meta.ScanRange
	limit     int64

	tuple     *descriptor.TupleDescriptor
	conjuncts exec.ExprContext
	batch     []meta.Row
	metaEOS   bool
	closed    bool
}

func NewMetaScanner(
	logger *zap.Logger,
	client frontend.Client,
	alloc memory.Allocator,
	params Params,
	tupleID int64,
	scanRange *meta.ScanRange,
	limit int64,
) *MetaScanner {
	return &MetaScanner{
		logger:    logger,
		client:    client,
		alloc:     alloc,
		params:    params,
		tupleID:   tupleID,
		scanRange: scanRange,
		limit:     limit,
	}
}

func (s *MetaScanner) Open(state *exec.RuntimeState) error {
	if state == nil {
		return fmt.Errorf("input is nil pointer: %w", utils.ErrInvalidArgument)
	}

	s.logger.Debug("meta scanner open", zap.String("query_id", state.QueryID()))

	return nil
}

// Prepare resolves the destination schema, clones the scan node's
// predicate context and, if the scan range names a recognized metadata
// kind, performs the single fetch. A range without a kind is a normal
// empty scan, not a failure.
func (s *MetaScanner) Prepare(state *exec.RuntimeState, conjuncts exec.ExprContext) error {
	if state == nil {
		return fmt.Errorf("input is nil pointer: %w", utils.ErrInvalidArgument)
	}

	if conjuncts != nil {
		cloned, err := conjuncts.Clone(state)
		if err != nil {
			return fmt.Errorf("clone conjuncts: %w", err)
		}

		s.conjuncts = cloned
	}

	tuple, err := state.DescriptorTable().Tuple(s.tupleID)
	if err != nil {
		return fmt.Errorf("resolve tuple descriptor: %w", err)
	}

	s.tuple = tuple

	if s.scanRange.Kind() == meta.KindUnspecified {
		s.metaEOS = true

		return nil
	}

	if err := s.fetchMetadataBatch(state); err != nil {
		return fmt.Errorf("fetch metadata batch: %w", err)
	}

	return nil
}

func (s *MetaScanner) fetchMetadataBatch(state *exec.RuntimeState) error {
	request := &meta.FetchRequest{
		Cluster:   s.params.Cluster,
		Kind:      s.scanRange.Kind(),
		Catalog:   s.params.Catalog,
		Database:  s.params.Database,
		Table:     s.params.Table,
		Snapshots: s.scanRange.Snapshots,
	}

	result, err := s.client.FetchTableMetadata(state.Context(), request)
	if err != nil {
		return fmt.Errorf("fetch table metadata: %w", err)
	}

	if err := result.Status.Err(); err != nil {
		s.logger.Warn("fetch table metadata from frontend failed",
			zap.String("request", request.String()),
			zap.Error(err))

		return err
	}

	// The batch is moved into scanner-local state and owned exclusively
	// until drained.
	s.batch = result.Rows
	result.Rows = nil

	return nil
}

// GetNext drains the buffered batch into the block. The block's builders
// are reused when it already carries some, freshly allocated otherwise.
// On any conversion error no partial contents are handed back.
func (s *MetaScanner) GetNext(state *exec.RuntimeState, block *columnar.Block, eof *bool) error {
	if state == nil || block == nil || eof == nil {
		return fmt.Errorf("input is nil pointer: %w", utils.ErrInvalidArgument)
	}

	if s.metaEOS {
		*eof = true

		return nil
	}

	if err := state.Cancelled(); err != nil {
		return err
	}

	fields := make([]arrow.Field, 0, len(s.tuple.Slots))

	for _, slot := range s.tuple.Slots {
		field, err := slot.Field()
		if err != nil {
			return fmt.Errorf("slot to arrow field: %w", err)
		}

		fields = append(fields, field)
	}

	var builders []array.Builder

	if block.MemReuse() {
		// Take exclusive ownership of the backing builders for the
		// duration of the fill.
		builders = block.Detach()

		if len(builders) != len(s.tuple.Slots) {
			return fmt.Errorf(
				"reused block carries %d columns against %d destination slots: %w",
				len(builders), len(s.tuple.Slots), utils.ErrInvariantViolation)
		}
	} else {
		for _, slot := range s.tuple.Slots {
			builder, err := slot.EmptyBuilder(s.alloc)
			if err != nil {
				releaseAll(builders)

				return fmt.Errorf("new column builder: %w", err)
			}

			builders = append(builders, builder)
		}
	}

	rows, err := s.fillWithRemoteData(state, builders)
	if err != nil {
		releaseAll(builders)

		return fmt.Errorf("fill block with remote data: %w", err)
	}

	if err := block.Attach(fields, builders, rows); err != nil {
		releaseAll(builders)

		return fmt.Errorf("attach columns to block: %w", err)
	}

	if rows == 0 && s.metaEOS {
		*eof = true
	}

	s.logger.Debug("meta scanner output", zap.Int("rows", rows))

	return nil
}

// fillWithRemoteData converts the buffered rows column by column, so
// that slots the planner pruned cost nothing per row. The pass always
// exhausts the batch and latches end-of-stream: the frontend sends the
// complete result set in one response.
func (s *MetaScanner) fillWithRemoteData(state *exec.RuntimeState, builders []array.Builder) (int, error) {
	rows := s.batch
	if s.limit > 0 && int64(len(rows)) > s.limit {
		rows = rows[:s.limit]
	}

	converted := 0

	for colIdx, slot := range s.tuple.Slots {
		if !slot.Materialized {
			continue
		}

		if err := state.Cancelled(); err != nil {
			return 0, err
		}

		converted = len(rows)

		for rowIdx := range rows {
			row := &rows[rowIdx]

			if len(row.Values) != len(s.tuple.Slots) {
				return 0, fmt.Errorf(
					"row %d carries %d values against %d destination slots: %w",
					rowIdx, len(row.Values), len(s.tuple.Slots), utils.ErrInvariantViolation)
			}

			// Remote metadata rows never carry null markers, so values
			// always land in the builder as non-null entries even for
			// nullable slots.
			value := row.Values[colIdx]

			switch slot.Type {
			case descriptor.TypeInt:
				builders[colIdx].(*array.Int32Builder).Append(int32(value.Long))
			case descriptor.TypeBigInt:
				builders[colIdx].(*array.Int64Builder).Append(value.Long)
			case descriptor.TypeTimestamp:
				builders[colIdx].(*array.Uint64Builder).Append(uint64(value.Long))
			case descriptor.TypeChar, descriptor.TypeVarchar, descriptor.TypeString:
				builders[colIdx].(*array.StringBuilder).Append(value.Text)
			default:
				return 0, fmt.Errorf(
					"invalid column type %v on column '%s': %w",
					slot.Type, slot.Name, utils.ErrDataTypeNotSupported)
			}
		}
	}

	s.metaEOS = true
	s.batch = nil

	return converted, nil
}

// Close releases the cloned predicate context. Safe to call more than
// once and in any lifecycle state.
func (s *MetaScanner) Close(_ *exec.RuntimeState) error {
	if s.closed {
		return nil
	}

	if s.conjuncts != nil {
		s.conjuncts.Close()
		s.conjuncts = nil
	}

	s.batch = nil
	s.closed = true

	return nil
}

func releaseAll(builders []array.Builder) {
	for _, builder := range builders {
		builder.Release()
	}
}

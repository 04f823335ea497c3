package descriptor

import (
	"fmt"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"

	"github.com/youtNa/doris/utils"
)

// TypeID is the semantic type of a destination slot. The set mirrors the
// engine's primitive types; the metadata scanner materializes only a
// subset of them.
type TypeID int8

const (
	TypeInvalid TypeID = iota
	TypeBoolean
	TypeInt
	TypeBigInt
	TypeDouble
	TypeTimestamp
	TypeChar
	TypeVarchar
	TypeString
)

var typeNames = map[TypeID]string{
	TypeInvalid:   "INVALID",
	TypeBoolean:   "BOOLEAN",
	TypeInt:       "INT",
	TypeBigInt:    "BIGINT",
	TypeDouble:    "DOUBLE",
	TypeTimestamp: "TIMESTAMP",
	TypeChar:      "CHAR",
	TypeVarchar:   "VARCHAR",
	TypeString:    "STRING",
}

func (t TypeID) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TypeID(%d)", int8(t))
}

// SlotDescriptor describes one destination column of a scan. Immutable
// for the duration of the scan.
type SlotDescriptor struct {
	Name         string
	Type         TypeID
	Nullable     bool
	Materialized bool
}

// Field returns the arrow field this slot materializes into.
//
// Timestamps are carried as uint64 in the engine's native encoding, the
// same representation the remote service uses on the wire.
func (s *SlotDescriptor) Field() (arrow.Field, error) {
	var dt arrow.DataType

	switch s.Type {
	case TypeInt:
		dt = arrow.PrimitiveTypes.Int32
	case TypeBigInt:
		dt = arrow.PrimitiveTypes.Int64
	case TypeTimestamp:
		dt = arrow.PrimitiveTypes.Uint64
	case TypeChar, TypeVarchar, TypeString:
		dt = arrow.BinaryTypes.String
	default:
		return arrow.Field{}, fmt.Errorf("slot '%s' of type %v: %w", s.Name, s.Type, utils.ErrDataTypeNotSupported)
	}

	return arrow.Field{Name: s.Name, Type: dt, Nullable: s.Nullable}, nil
}

// EmptyBuilder returns a fresh builder for this slot's arrow type. The
// builder tracks validity on its own; values appended through it are
// implicitly non-null.
func (s *SlotDescriptor) EmptyBuilder(alloc memory.Allocator) (array.Builder, error) {
	switch s.Type {
	case TypeInt:
		return array.NewInt32Builder(alloc), nil
	case TypeBigInt:
		return array.NewInt64Builder(alloc), nil
	case TypeTimestamp:
		return array.NewUint64Builder(alloc), nil
	case TypeChar, TypeVarchar, TypeString:
		return array.NewStringBuilder(alloc), nil
	default:
		return nil, fmt.Errorf("slot '%s' of type %v: %w", s.Name, s.Type, utils.ErrDataTypeNotSupported)
	}
}

// TupleDescriptor is the ordered list of destination slots of one scan
// output row.
type TupleDescriptor struct {
	ID    int64
	Slots []*SlotDescriptor
}

func (t *TupleDescriptor) Schema() (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(t.Slots))

	for _, slot := range t.Slots {
		field, err := slot.Field()
		if err != nil {
			return nil, fmt.Errorf("slot to arrow field: %w", err)
		}

		fields = append(fields, field)
	}

	return arrow.NewSchema(fields, nil), nil
}

// Table resolves tuple descriptors by id. It stands in for the plan
// fragment's descriptor catalog.
type Table struct {
	tuples map[int64]*TupleDescriptor
}

func NewTable(tuples ...*TupleDescriptor) *Table {
	out := &Table{tuples: make(map[int64]*TupleDescriptor, len(tuples))}

	for _, tuple := range tuples {
		out.tuples[tuple.ID] = tuple
	}

	return out
}

func (t *Table) Tuple(id int64) (*TupleDescriptor, error) {
	tuple, ok := t.tuples[id]
	if !ok {
		return nil, fmt.Errorf("tuple descriptor %d is not registered: %w", id, utils.ErrInvalidArgument)
	}

	return tuple, nil
}

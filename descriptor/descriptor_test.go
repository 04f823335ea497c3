package descriptor

import (
	"testing"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/youtNa/doris/utils"
)

func TestSlotToArrow(t *testing.T) {
	alloc := memory.NewGoAllocator()

	testCases := []struct {
		typeID       TypeID
		expectedType arrow.DataType
		builder      any
	}{
		{TypeInt, arrow.PrimitiveTypes.Int32, (*array.Int32Builder)(nil)},
		{TypeBigInt, arrow.PrimitiveTypes.Int64, (*array.Int64Builder)(nil)},
		{TypeTimestamp, arrow.PrimitiveTypes.Uint64, (*array.Uint64Builder)(nil)},
		{TypeChar, arrow.BinaryTypes.String, (*array.StringBuilder)(nil)},
		{TypeVarchar, arrow.BinaryTypes.String, (*array.StringBuilder)(nil)},
		{TypeString, arrow.BinaryTypes.String, (*array.StringBuilder)(nil)},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.typeID.String(), func(t *testing.T) {
			slot := &SlotDescriptor{Name: "col", Type: tc.typeID, Nullable: true, Materialized: true}

			field, err := slot.Field()
			require.NoError(t, err)
			require.Equal(t, "col", field.Name)
			require.Equal(t, tc.expectedType, field.Type)
			require.True(t, field.Nullable)

			builder, err := slot.EmptyBuilder(alloc)
			require.NoError(t, err)
			require.IsType(t, tc.builder, builder)
			require.Equal(t, 0, builder.Len())

			builder.Release()
		})
	}
}

func TestSlotUnsupportedType(t *testing.T) {
	alloc := memory.NewGoAllocator()

	for _, typeID := range []TypeID{TypeBoolean, TypeDouble, TypeInvalid} {
		typeID := typeID

		t.Run(typeID.String(), func(t *testing.T) {
			slot := &SlotDescriptor{Name: "col", Type: typeID}

			_, err := slot.Field()
			require.ErrorIs(t, err, utils.ErrDataTypeNotSupported)

			_, err = slot.EmptyBuilder(alloc)
			require.ErrorIs(t, err, utils.ErrDataTypeNotSupported)
			require.Contains(t, err.Error(), "col")
		})
	}
}

func TestTupleSchema(t *testing.T) {
	tuple := &TupleDescriptor{
		ID: 1,
		Slots: []*SlotDescriptor{
			{Name: "id", Type: TypeBigInt, Materialized: true},
			{Name: "name", Type: TypeString, Nullable: true, Materialized: true},
		},
	}

	schema, err := tuple.Schema()
	require.NoError(t, err)
	require.Equal(t, 2, len(schema.Fields()))
	require.Equal(t, "name", schema.Field(1).Name)
}

func TestDescriptorTableLookup(t *testing.T) {
	tuple := &TupleDescriptor{ID: 5}
	table := NewTable(tuple)

	resolved, err := table.Tuple(5)
	require.NoError(t, err)
	require.Same(t, tuple, resolved)

	_, err = table.Tuple(6)
	require.ErrorIs(t, err, utils.ErrInvalidArgument)
}

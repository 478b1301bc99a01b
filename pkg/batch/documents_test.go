package batch

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "latency", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "host", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
	}, nil)
}

func TestFromDocuments(t *testing.T) {
	t.Run("should leave null cells for absent keys", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1), "latency": 1.5, "host": "node-1", "active": true},
			{"id": uint64(2)},
		})
		require.NoError(t, err)
		defer record.Release()

		assert.Equal(t, int64(2), record.NumRows())
		latency := record.Column(1).(*array.Float64)
		assert.Equal(t, 1.5, latency.Value(0))
		assert.True(t, latency.IsNull(1))
		assert.True(t, record.Column(2).(*array.String).IsNull(1))
		assert.True(t, record.Column(3).(*array.Boolean).IsNull(1))
	})

	t.Run("should coerce integers into float columns", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1), "latency": 3},
		})
		require.NoError(t, err)
		defer record.Release()
		assert.Equal(t, 3.0, record.Column(1).(*array.Float64).Value(0))
	})

	t.Run("should fail loudly on unsigned values too large for an integer column", func(t *testing.T) {
		withCount := arrow.NewSchema([]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
			{Name: "count", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		}, nil)

		_, err := FromDocuments(withCount, []Document{
			{"id": uint64(1), "count": uint64(math.MaxUint64)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "count")

		record, err := FromDocuments(withCount, []Document{
			{"id": uint64(1), "count": uint64(math.MaxInt64)},
		})
		require.NoError(t, err)
		defer record.Release()
		assert.Equal(t, int64(math.MaxInt64), record.Column(1).(*array.Int64).Value(0))
	})

	t.Run("should fail on a value the column type cannot hold", func(t *testing.T) {
		_, err := FromDocuments(testSchema(), []Document{
			{"id": "not-a-number"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("should produce a zero row record for no documents", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), nil)
		require.NoError(t, err)
		defer record.Release()
		assert.Equal(t, int64(0), record.NumRows())
		assert.True(t, testSchema().Equal(record.Schema()))
	})
}

func TestToDocuments(t *testing.T) {
	t.Run("should omit keys for null cells and keep typed values", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1), "latency": 1.5, "host": "node-1", "active": false},
			{"id": uint64(2)},
		})
		require.NoError(t, err)
		defer record.Release()

		docs, err := ToDocuments(record)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, Document{
			"id":      uint64(1),
			"latency": 1.5,
			"host":    "node-1",
			"active":  false,
		}, docs[0])
		assert.Equal(t, Document{"id": uint64(2)}, docs[1])
	})
}

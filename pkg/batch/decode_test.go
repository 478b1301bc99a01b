package batch

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID      uint64   `json:"id"`
	Host    string   `json:"host"`
	Latency *float64 `json:"latency,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Run("should return an empty sequence for no batches", func(t *testing.T) {
		rows, err := Decode[testRow](nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("should concatenate batches with differing schemas in input order", func(t *testing.T) {
		first, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1), "host": "node-1", "latency": 1.5},
		})
		require.NoError(t, err)
		defer first.Release()

		narrower := arrow.NewSchema([]arrow.Field{
			{Name: "host", Type: arrow.BinaryTypes.String},
			{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
		}, nil)
		second, err := FromDocuments(narrower, []Document{
			{"id": uint64(2), "host": "node-2"},
			{"id": uint64(3), "host": "node-3"},
		})
		require.NoError(t, err)
		defer second.Release()

		rows, err := Decode[testRow]([]arrow.Record{first, second})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, uint64(1), rows[0].ID)
		assert.Equal(t, "node-1", rows[0].Host)
		require.NotNil(t, rows[0].Latency)
		assert.Equal(t, 1.5, *rows[0].Latency)
		assert.Equal(t, testRow{ID: 2, Host: "node-2"}, rows[1])
		assert.Equal(t, testRow{ID: 3, Host: "node-3"}, rows[2])
	})

	t.Run("should leave optional columns at their zero value when absent", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1), "host": "node-1"},
		})
		require.NoError(t, err)
		defer record.Release()

		rows, err := Decode[testRow]([]arrow.Record{record})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].Latency)
	})

	t.Run("should fail when a required field is missing naming it", func(t *testing.T) {
		withoutHost := arrow.NewSchema([]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
		}, nil)
		record, err := FromDocuments(withoutHost, []Document{
			{"id": uint64(1)},
		})
		require.NoError(t, err)
		defer record.Release()

		_, err = Decode[testRow]([]arrow.Record{record})
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "host", decodeErr.Field)
	})

	t.Run("should decode into map targets without required fields", func(t *testing.T) {
		record, err := FromDocuments(testSchema(), []Document{
			{"id": uint64(1)},
		})
		require.NoError(t, err)
		defer record.Release()

		rows, err := Decode[map[string]interface{}]([]arrow.Record{record})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, float64(1), rows[0]["id"])
	})
}

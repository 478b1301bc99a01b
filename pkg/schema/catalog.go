package schema

import "github.com/apache/arrow-go/v18/arrow"

// Span returns the fixed span schema. Field order and nullability are
// part of the contract: consumers indexing span columns positionally
// must match this exactly.
func Span() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "parent_id", Type: arrow.PrimitiveTypes.Uint64, Nullable: true},
		{Name: "trace_id", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "process_id", Type: arrow.BinaryTypes.String},
		{Name: "start", Type: arrow.PrimitiveTypes.Int64},
		{Name: "end", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "tags", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
}

// Log returns the fixed portion of the log schema. Encoded log batches
// carry these six columns first, followed by a batch-specific tail of
// dynamically inferred columns, so log consumers must resolve columns
// by name rather than by position.
func Log() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "process_id", Type: arrow.BinaryTypes.String},
		{Name: "time", Type: arrow.PrimitiveTypes.Int64},
		{Name: "trace_id", Type: arrow.PrimitiveTypes.Uint64, Nullable: true},
		{Name: "span_id", Type: arrow.PrimitiveTypes.Uint64, Nullable: true},
		{Name: "level", Type: arrow.BinaryTypes.String},
		{Name: "message", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
}

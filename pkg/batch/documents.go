package batch

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Document is the row-oriented intermediate form bridging typed rows
// and columnar records: column name to cell value. An absent key is a
// null cell.
type Document map[string]interface{}

// FromDocuments serializes one document per row against the given
// schema into an immutable record. Schema columns absent from a
// document yield null cells for that row. Numeric values are coerced
// into the column's type; a value the column type cannot hold is an
// error naming the column.
func FromDocuments(schema *arrow.Schema, docs []Document) (arrow.Record, error) {
	builder := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer builder.Release()

	for _, doc := range docs {
		for i := 0; i < schema.NumFields(); i++ {
			field := schema.Field(i)
			value, ok := doc[field.Name]
			if !ok || value == nil {
				builder.Field(i).AppendNull()
				continue
			}
			if err := appendValue(builder.Field(i), field, value); err != nil {
				return nil, err
			}
		}
	}
	return builder.NewRecord(), nil
}

// ToDocuments converts a record into one document per row. Null cells
// produce no key.
func ToDocuments(record arrow.Record) ([]Document, error) {
	docs := make([]Document, record.NumRows())
	for i := range docs {
		docs[i] = make(Document, record.Schema().NumFields())
	}
	for col := 0; col < int(record.NumCols()); col++ {
		field := record.Schema().Field(col)
		if err := readColumn(docs, field, record.Column(col)); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func appendValue(builder array.Builder, field arrow.Field, value interface{}) error {
	switch b := builder.(type) {
	case *array.Uint64Builder:
		u, ok := asUint64(value)
		if !ok {
			return columnTypeError(field, value)
		}
		b.Append(u)
	case *array.Int64Builder:
		n, ok := asInt64(value)
		if !ok {
			return columnTypeError(field, value)
		}
		b.Append(n)
	case *array.Float64Builder:
		f, ok := asFloat64(value)
		if !ok {
			return columnTypeError(field, value)
		}
		b.Append(f)
	case *array.StringBuilder:
		s, ok := value.(string)
		if !ok {
			return columnTypeError(field, value)
		}
		b.Append(s)
	case *array.BooleanBuilder:
		v, ok := value.(bool)
		if !ok {
			return columnTypeError(field, value)
		}
		b.Append(v)
	default:
		return fmt.Errorf("unsupported column type %s for column %q", field.Type, field.Name)
	}
	return nil
}

func readColumn(docs []Document, field arrow.Field, column arrow.Array) error {
	switch arr := column.(type) {
	case *array.Uint64:
		for i := 0; i < arr.Len(); i++ {
			if arr.IsValid(i) {
				docs[i][field.Name] = arr.Value(i)
			}
		}
	case *array.Int64:
		for i := 0; i < arr.Len(); i++ {
			if arr.IsValid(i) {
				docs[i][field.Name] = arr.Value(i)
			}
		}
	case *array.Float64:
		for i := 0; i < arr.Len(); i++ {
			if arr.IsValid(i) {
				docs[i][field.Name] = arr.Value(i)
			}
		}
	case *array.String:
		for i := 0; i < arr.Len(); i++ {
			if arr.IsValid(i) {
				docs[i][field.Name] = arr.Value(i)
			}
		}
	case *array.Boolean:
		for i := 0; i < arr.Len(); i++ {
			if arr.IsValid(i) {
				docs[i][field.Name] = arr.Value(i)
			}
		}
	default:
		return fmt.Errorf("unsupported column type %s for column %q", field.Type, field.Name)
	}
	return nil
}

func columnTypeError(field arrow.Field, value interface{}) error {
	return fmt.Errorf("failed to write value of type %T into column %q (%s)", value, field.Name, field.Type)
}

func asUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	}
	return 0, false
}

func asInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func asFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		if n, ok := asInt64(value); ok {
			return float64(n), true
		}
	}
	return 0, false
}

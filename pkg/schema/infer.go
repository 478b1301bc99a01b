package schema

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
)

// InferenceError means the values observed for one dynamic field cannot
// share a single column type.
type InferenceError struct {
	Key    string
	Reason string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("cannot infer a column type for field %q: %s", e.Key, e.Reason)
}

// InferFields derives one nullable column per distinct key observed in
// the given field documents. The type of each column is the narrowest
// type accommodating every value bound to its key across all documents,
// widening Int64 to Float64 when both are observed; any other mixed
// observation fails. A key observed only as nil infers as String.
// Columns are returned in lexicographic key order so that identical
// corpora always produce identical schemas.
func InferFields(docs []map[string]interface{}) ([]arrow.Field, error) {
	types := make(map[string]arrow.DataType)
	for _, doc := range docs {
		for key, value := range doc {
			observed, err := valueType(key, value)
			if err != nil {
				return nil, err
			}
			if observed == nil {
				if _, seen := types[key]; !seen {
					types[key] = nil
				}
				continue
			}
			previous, seen := types[key]
			if !seen || previous == nil {
				types[key] = observed
				continue
			}
			widened, ok := widen(previous, observed)
			if !ok {
				return nil, &InferenceError{
					Key:    key,
					Reason: fmt.Sprintf("observed both %s and %s", previous, observed),
				}
			}
			types[key] = widened
		}
	}

	keys := make([]string, 0, len(types))
	for key := range types {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]arrow.Field, 0, len(keys))
	for _, key := range keys {
		columnType := types[key]
		if columnType == nil {
			columnType = arrow.BinaryTypes.String
		}
		fields = append(fields, arrow.Field{Name: key, Type: columnType, Nullable: true})
	}
	return fields, nil
}

func valueType(key string, value interface{}) (arrow.DataType, error) {
	switch value.(type) {
	case nil:
		return nil, nil
	case bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case string:
		return arrow.BinaryTypes.String, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return arrow.PrimitiveTypes.Int64, nil
	case float32, float64:
		return arrow.PrimitiveTypes.Float64, nil
	default:
		return nil, &InferenceError{
			Key:    key,
			Reason: fmt.Sprintf("unsupported value of type %T", value),
		}
	}
}

// widen resolves two observed types for one key to a common column
// type. The only admitted widening is Int64 into Float64.
func widen(a, b arrow.DataType) (arrow.DataType, bool) {
	if arrow.TypeEqual(a, b) {
		return a, true
	}
	if isNumeric(a) && isNumeric(b) {
		return arrow.PrimitiveTypes.Float64, true
	}
	return nil, false
}

func isNumeric(t arrow.DataType) bool {
	return t.ID() == arrow.INT64 || t.ID() == arrow.FLOAT64
}

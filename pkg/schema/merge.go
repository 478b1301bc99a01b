package schema

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// MergeError means a dynamic column cannot be combined with the fixed
// schema, or two dynamic columns disagree with each other.
type MergeError struct {
	Column string
	Reason string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("cannot merge column %q into the schema: %s", e.Column, e.Reason)
}

// Merge appends the dynamic columns to the fixed schema, preserving the
// fixed columns' order and positions. A dynamic column reusing a fixed
// column's name is always an error, never an overwrite, as is a repeated
// dynamic name whose types disagree.
func Merge(fixed *arrow.Schema, dynamic []arrow.Field) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, fixed.NumFields()+len(dynamic))
	fields = append(fields, fixed.Fields()...)

	seen := make(map[string]arrow.DataType, len(dynamic))
	for _, field := range dynamic {
		if fixed.HasField(field.Name) {
			return nil, &MergeError{Column: field.Name, Reason: "name collides with a fixed column"}
		}
		if previous, ok := seen[field.Name]; ok {
			if !arrow.TypeEqual(previous, field.Type) {
				return nil, &MergeError{
					Column: field.Name,
					Reason: fmt.Sprintf("conflicting types %s and %s", previous, field.Type),
				}
			}
			continue
		}
		seen[field.Name] = field.Type
		fields = append(fields, field)
	}
	return arrow.NewSchema(fields, nil), nil
}

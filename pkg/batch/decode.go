package batch

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// DecodeError means a row lacked a column the target row type requires.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("row is missing required field %q", e.Field)
}

// Decode reconstructs typed rows from zero or more records. Records may
// carry different schemas; columns are resolved by name, never by
// position, and each record is decoded independently. The result is the
// concatenation of the records' rows in input order. A column the
// target type does not name is ignored; a column the target type
// requires but a row does not carry is a DecodeError.
func Decode[T any](records []arrow.Record) ([]T, error) {
	if len(records) == 0 {
		return nil, nil
	}

	required := requiredFields(reflect.TypeFor[T]())
	var rows []T
	for _, record := range records {
		docs, err := ToDocuments(record)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			for _, name := range required {
				if _, ok := doc[name]; !ok {
					return nil, &DecodeError{Field: name}
				}
			}
			row, err := mapDocument[T](doc)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// mapDocument maps a row-document onto the target type by field name,
// going through JSON so that target types control their own cell
// parsing (for example tag cells holding serialized documents).
func mapDocument[T any](doc Document) (T, error) {
	var row T
	raw, err := json.Marshal(doc)
	if err != nil {
		return row, fmt.Errorf("failed to serialize row document: %w", err)
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return row, fmt.Errorf("failed to map row document onto %T: %w", row, err)
	}
	return row, nil
}

// requiredFields lists the JSON names of the struct fields a decoded
// row must carry: exported, non-nilable, and not marked omitempty.
// Non-struct targets require nothing.
func requiredFields(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		if strings.Contains(opts, "omitempty") {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
			continue
		}
		names = append(names, name)
	}
	return names
}

package model

import "encoding/json"

// Tags is the opaque per-span metadata map. Tags are never expanded
// into columns; a batch stores each span's tags as one serialized JSON
// document in a string cell.
type Tags map[string]interface{}

// UnmarshalJSON accepts either a JSON object or a JSON-encoded string
// holding an object, the form tags take when read back out of a batch cell.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var serialized string
		if err := json.Unmarshal(data, &serialized); err != nil {
			return err
		}
		if serialized == "" || serialized == "null" {
			*t = nil
			return nil
		}
		return json.Unmarshal([]byte(serialized), (*map[string]interface{})(t))
	}
	return json.Unmarshal(data, (*map[string]interface{})(t))
}

// Span is one timed operation within a distributed trace. Start and End
// are microsecond timestamps; a nil End means the span is not yet closed.
type Span struct {
	ID        uint64  `json:"id"`
	ParentID  *uint64 `json:"parent_id,omitempty"`
	TraceID   uint64  `json:"trace_id"`
	Name      string  `json:"name"`
	ProcessID string  `json:"process_id"`
	Start     int64   `json:"start"`
	End       *int64  `json:"end,omitempty"`
	Tags      Tags    `json:"tags,omitempty"`
}

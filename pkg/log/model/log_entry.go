package model

// LogEntry is a timestamped message optionally linked to a trace and
// span. Time is a microsecond timestamp. Fields is an open mapping of
// structured attributes; unlike span tags these are expanded into
// individual typed columns when encoded.
type LogEntry struct {
	ProcessID string                 `json:"process_id"`
	Time      int64                  `json:"time"`
	TraceID   *uint64                `json:"trace_id,omitempty"`
	SpanID    *uint64                `json:"span_id,omitempty"`
	Level     Level                  `json:"level"`
	Message   *string                `json:"message,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

type Level string

const (
	DebugLevel Level = "DEBUG"
	InfoLevel  Level = "INFO"
	WarnLevel  Level = "WARN"
	ErrorLevel Level = "ERROR"
)

package otel

import (
	"encoding/binary"
	"fmt"

	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	logsv1 "go.opentelemetry.io/proto/otlp/logs/v1"
	tracev1 "go.opentelemetry.io/proto/otlp/trace/v1"

	logModel "github.com/lattice-obs/lattice/pkg/log/model"
	traceModel "github.com/lattice-obs/lattice/pkg/trace/model"
)

const unassignedServiceName = "Never Assigned"

// ConvertResourceSpans flattens one OTLP resource-span group into span
// rows ready for the span encoder. Span, parent and trace identifiers
// keep the low 64 bits of their OTLP byte representation; timestamps
// are truncated from nanoseconds to microseconds.
func ConvertResourceSpans(resourceSpans *tracev1.ResourceSpans) []traceModel.Span {
	serviceName := getServiceName(resourceSpans)
	var spans []traceModel.Span
	for _, scopeSpans := range resourceSpans.ScopeSpans {
		for _, span := range scopeSpans.Spans {
			spans = append(spans, convertSpan(span, serviceName))
		}
	}
	return spans
}

// ConvertResourceLogs flattens one OTLP resource-log group into log
// rows ready for the log encoder. Record attributes become the row's
// dynamic fields.
func ConvertResourceLogs(resourceLogs *logsv1.ResourceLogs) []logModel.LogEntry {
	serviceName := getServiceNameFromLogs(resourceLogs)
	var logs []logModel.LogEntry
	for _, scopeLogs := range resourceLogs.ScopeLogs {
		for _, record := range scopeLogs.LogRecords {
			logs = append(logs, convertLogRecord(record, serviceName))
		}
	}
	return logs
}

func convertSpan(span *tracev1.Span, serviceName string) traceModel.Span {
	converted := traceModel.Span{
		ID:        idFromBytes(span.SpanId),
		TraceID:   idFromBytes(span.TraceId),
		Name:      span.Name,
		ProcessID: serviceName,
		Start:     int64(span.StartTimeUnixNano / 1000),
	}
	if len(span.ParentSpanId) > 0 {
		parentID := idFromBytes(span.ParentSpanId)
		converted.ParentID = &parentID
	}
	if span.EndTimeUnixNano > 0 {
		end := int64(span.EndTimeUnixNano / 1000)
		converted.End = &end
	}
	if len(span.Attributes) > 0 {
		converted.Tags = make(traceModel.Tags, len(span.Attributes))
		for _, attribute := range span.Attributes {
			converted.Tags[attribute.Key] = attributeValue(attribute.Value)
		}
	}
	return converted
}

func convertLogRecord(record *logsv1.LogRecord, serviceName string) logModel.LogEntry {
	converted := logModel.LogEntry{
		ProcessID: serviceName,
		Time:      int64(record.TimeUnixNano / 1000),
		Level:     getSeverity(record.SeverityNumber),
	}
	if record.Body != nil {
		message := record.Body.GetStringValue()
		converted.Message = &message
	}
	if len(record.TraceId) > 0 {
		traceID := idFromBytes(record.TraceId)
		converted.TraceID = &traceID
	}
	if len(record.SpanId) > 0 {
		spanID := idFromBytes(record.SpanId)
		converted.SpanID = &spanID
	}
	if len(record.Attributes) > 0 {
		converted.Fields = make(map[string]interface{}, len(record.Attributes))
		for _, attribute := range record.Attributes {
			converted.Fields[attribute.Key] = attributeValue(attribute.Value)
		}
	}
	return converted
}

func getServiceName(resourceSpans *tracev1.ResourceSpans) string {
	serviceName := unassignedServiceName
	if resourceSpans.Resource == nil {
		return serviceName
	}
	for _, attribute := range resourceSpans.Resource.Attributes {
		if attribute.Key == "service.name" {
			serviceName = attribute.Value.GetStringValue()
		}
	}
	return serviceName
}

func getServiceNameFromLogs(resourceLogs *logsv1.ResourceLogs) string {
	serviceName := unassignedServiceName
	if resourceLogs.Resource == nil {
		return serviceName
	}
	for _, attribute := range resourceLogs.Resource.Attributes {
		if attribute.Key == "service.name" {
			serviceName = attribute.Value.GetStringValue()
		}
	}
	return serviceName
}

func getSeverity(severityNumber logsv1.SeverityNumber) logModel.Level {
	switch {
	case severityNumber >= logsv1.SeverityNumber_SEVERITY_NUMBER_ERROR:
		return logModel.ErrorLevel
	case severityNumber >= logsv1.SeverityNumber_SEVERITY_NUMBER_WARN:
		return logModel.WarnLevel
	case severityNumber >= logsv1.SeverityNumber_SEVERITY_NUMBER_INFO:
		return logModel.InfoLevel
	case severityNumber >= logsv1.SeverityNumber_SEVERITY_NUMBER_TRACE:
		return logModel.DebugLevel
	default:
		return logModel.InfoLevel
	}
}

// attributeValue maps an OTLP attribute onto a dynamic field value.
// Scalar values keep their type; an absent value maps to nil; composite
// values degrade to their string form since dynamic columns hold
// scalars only.
func attributeValue(value *commonv1.AnyValue) interface{} {
	if value == nil || value.Value == nil {
		return nil
	}
	switch v := value.Value.(type) {
	case *commonv1.AnyValue_StringValue:
		return v.StringValue
	case *commonv1.AnyValue_BoolValue:
		return v.BoolValue
	case *commonv1.AnyValue_IntValue:
		return v.IntValue
	case *commonv1.AnyValue_DoubleValue:
		return v.DoubleValue
	default:
		return fmt.Sprintf("%v", value.Value)
	}
}

func idFromBytes(id []byte) uint64 {
	if len(id) == 0 {
		return 0
	}
	if len(id) < 8 {
		padded := make([]byte, 8)
		copy(padded[8-len(id):], id)
		return binary.BigEndian.Uint64(padded)
	}
	return binary.BigEndian.Uint64(id[len(id)-8:])
}

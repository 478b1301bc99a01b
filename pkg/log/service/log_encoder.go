package service

import (
	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"

	"github.com/lattice-obs/lattice/pkg/batch"
	"github.com/lattice-obs/lattice/pkg/log/model"
	"github.com/lattice-obs/lattice/pkg/schema"
)

type LogEncoderService struct {
	logger *zap.Logger
}

func NewLogEncoderService(logger *zap.Logger) *LogEncoderService {
	return &LogEncoderService{logger: logger}
}

// EncodeLogs converts log entries into one immutable columnar batch.
// Every row contributes a row-document holding the six fixed columns
// plus its dynamic fields flattened in as siblings; a column schema for
// the dynamic fields is inferred from the rows that carry any, merged
// with the fixed log schema, and all rows are serialized against the
// merged result. Rows without dynamic fields leave the dynamic columns
// null. If no row carries fields, the batch degrades to exactly the
// fixed schema.
func (les *LogEncoderService) EncodeLogs(logs []model.LogEntry) (arrow.Record, error) {
	docs := make([]batch.Document, 0, len(logs))
	var fieldDocs []map[string]interface{}
	for _, log := range logs {
		doc := batch.Document{
			"process_id": log.ProcessID,
			"time":       log.Time,
			"level":      string(log.Level),
		}
		if log.TraceID != nil {
			doc["trace_id"] = *log.TraceID
		}
		if log.SpanID != nil {
			doc["span_id"] = *log.SpanID
		}
		if log.Message != nil {
			doc["message"] = *log.Message
		}
		if len(log.Fields) > 0 {
			fieldDoc := make(map[string]interface{}, len(log.Fields))
			for key, value := range log.Fields {
				fieldDoc[key] = value
				doc[key] = value
			}
			fieldDocs = append(fieldDocs, fieldDoc)
		}
		docs = append(docs, doc)
	}

	inferred, err := schema.InferFields(fieldDocs)
	if err != nil {
		return nil, err
	}
	merged, err := schema.Merge(schema.Log(), inferred)
	if err != nil {
		return nil, err
	}

	les.logger.Debug(
		"encoded logs into columnar batch",
		zap.Int("rows", len(docs)),
		zap.Int("dynamic_columns", len(inferred)),
	)
	return batch.FromDocuments(merged, docs)
}

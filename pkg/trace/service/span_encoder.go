package service

import (
	"encoding/json"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/lattice-obs/lattice/pkg/schema"
	"github.com/lattice-obs/lattice/pkg/trace/model"
)

// SerializationError means a span carried a tag value that cannot be
// represented in a batch cell.
type SerializationError struct {
	SpanID uint64
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize tags of span %d: %v", e.SpanID, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

type SpanEncoderService struct {
	logger *zap.Logger
}

func NewSpanEncoderService(logger *zap.Logger) *SpanEncoderService {
	return &SpanEncoderService{logger: logger}
}

// EncodeSpans converts spans into one immutable columnar batch carrying
// the fixed eight-column span schema. Each span's tags are serialized
// independently into one JSON document per row, never merged across
// rows. Empty input yields a zero-row batch with the full schema.
func (ses *SpanEncoderService) EncodeSpans(spans []model.Span) (arrow.Record, error) {
	builder := array.NewRecordBuilder(memory.NewGoAllocator(), schema.Span())
	defer builder.Release()

	ids := builder.Field(0).(*array.Uint64Builder)
	parentIDs := builder.Field(1).(*array.Uint64Builder)
	traceIDs := builder.Field(2).(*array.Uint64Builder)
	names := builder.Field(3).(*array.StringBuilder)
	processIDs := builder.Field(4).(*array.StringBuilder)
	starts := builder.Field(5).(*array.Int64Builder)
	ends := builder.Field(6).(*array.Int64Builder)
	tags := builder.Field(7).(*array.StringBuilder)

	for _, span := range spans {
		ids.Append(span.ID)
		if span.ParentID != nil {
			parentIDs.Append(*span.ParentID)
		} else {
			parentIDs.AppendNull()
		}
		traceIDs.Append(span.TraceID)
		names.Append(span.Name)
		processIDs.Append(span.ProcessID)
		starts.Append(span.Start)
		if span.End != nil {
			ends.Append(*span.End)
		} else {
			ends.AppendNull()
		}
		if span.Tags == nil {
			tags.AppendNull()
		} else {
			serialized, err := json.Marshal(span.Tags)
			if err != nil {
				return nil, &SerializationError{SpanID: span.ID, Err: err}
			}
			tags.Append(string(serialized))
		}
	}

	ses.logger.Debug("encoded spans into columnar batch", zap.Int("rows", len(spans)))
	return builder.NewRecord(), nil
}

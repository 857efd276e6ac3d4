package observability

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Span records one timed operation. Spans nest through the context: a span
// started under another span inherits its trace ID and points back at it.
type Span struct {
	TraceID  string            `json:"trace_id"`
	ID       string            `json:"span_id"`
	ParentID string            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Started  time.Time         `json:"started"`
	Elapsed  time.Duration     `json:"elapsed,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Failure  string            `json:"failure,omitempty"`
}

type spanKey struct{}

func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	span := &Span{
		ID:      newSpanID(),
		Name:    name,
		Started: time.Now(),
	}

	if parent := SpanFromContext(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.ID
	} else {
		span.TraceID = newSpanID()
	}

	return context.WithValue(ctx, spanKey{}, span), span
}

// Finish stamps the elapsed time. Safe to call once per span.
func (s *Span) Finish() {
	s.Elapsed = time.Since(s.Started)
}

func (s *Span) SetTag(key, value string) {
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[key] = value
}

func (s *Span) SetError(err error) {
	if err != nil {
		s.Failure = err.Error()
	}
}

func (s *Span) Failed() bool {
	return s.Failure != ""
}

func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey{}).(*Span); ok {
		return span
	}
	return nil
}

func newSpanID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

package ports

import "context"

// Tracer creates spans around phase execution for timing and error
// reporting.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start begins a span with the given name.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a single traced unit of work.
type Span interface {
	// End completes the span.
	End()

	// RecordError attaches an error to the span.
	RecordError(err error)

	// SetAttribute attaches a key/value pair to the span.
	SetAttribute(key string, value any)
}

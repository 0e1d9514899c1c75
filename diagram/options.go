package diagram

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/don7panic/codewiki-go-diagram/relations"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger. If not provided, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTracer sets the OpenTelemetry tracer used for generation spans.
// If not provided, the global tracer provider is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Generator) {
		if tracer != nil {
			g.tracer = tracer
		}
	}
}

// WithFilter restricts the diagram to classes matching a CEL expression.
// The expression sees the variables name, kind, pkg and exported.
func WithFilter(expr string) Option {
	return func(g *Generator) {
		g.filter = expr
	}
}

// WithDeclared adds explicitly declared relationships to every diagram.
func WithDeclared(rels []relations.Relation) Option {
	return func(g *Generator) {
		g.declared = append(g.declared, rels...)
	}
}

// WithImplements toggles interface implementation edges. They are drawn by default.
func WithImplements(show bool) Option {
	return func(g *Generator) {
		g.showImplements = show
	}
}

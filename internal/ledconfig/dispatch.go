package ledconfig

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"led-layout/internal/ctxlog"
	"led-layout/internal/layout"
)

// Builder turns a document of one schema version into a GroupMap.
type Builder interface {
	Build(ctx context.Context, doc *Document, opts BuildOptions) (layout.GroupMap, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, doc *Document, opts BuildOptions) (layout.GroupMap, error)

// Build calls f.
func (f BuilderFunc) Build(ctx context.Context, doc *Document, opts BuildOptions) (layout.GroupMap, error) {
	return f(ctx, doc, opts)
}

// BuilderRegistry maps schema versions to their builders.
type BuilderRegistry struct {
	builders map[int64]Builder
}

// NewBuilderRegistry creates an empty registry.
func NewBuilderRegistry() *BuilderRegistry {
	return &BuilderRegistry{builders: make(map[int64]Builder)}
}

// DefaultRegistry returns a registry holding every built-in schema version.
func DefaultRegistry() *BuilderRegistry {
	r := NewBuilderRegistry()
	r.Register(1, BuilderV1{})

	return r
}

// Register adds the builder for version. Registering a version twice is a
// programming error and panics.
func (r *BuilderRegistry) Register(version int64, b Builder) {
	if _, exists := r.builders[version]; exists {
		panic(fmt.Sprintf("builder for LED config version %d already registered", version))
	}

	r.builders[version] = b
}

// Get returns the builder for version, or nil if none is registered.
func (r *BuilderRegistry) Get(version int64) Builder {
	return r.builders[version]
}

// Versions returns the registered versions in ascending order.
func (r *BuilderRegistry) Versions() []int64 {
	return slices.Sorted(maps.Keys(r.builders))
}

// Dispatch routes doc to the builder for its version.
func (r *BuilderRegistry) Dispatch(ctx context.Context, doc *Document, opts BuildOptions) (layout.GroupMap, error) {
	b := r.Get(doc.Version())
	if b == nil {
		ctxlog.FromContext(ctx).Error("Unsupported LED config version", "version", doc.Version(), "supported", r.Versions())
		return nil, &UnsupportedVersionError{Version: doc.Version()}
	}

	return b.Build(ctx, doc, opts)
}

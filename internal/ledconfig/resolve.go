package ledconfig

import (
	"context"
	"fmt"
	"io/fs"

	"led-layout/internal/ctxlog"
	"led-layout/internal/layout"
)

// Discoverer finds the config path when the caller supplies none.
type Discoverer interface {
	Discover(ctx context.Context) (string, error)
}

// DiscovererFunc adapts a function to the Discoverer interface.
type DiscovererFunc func(ctx context.Context) (string, error)

// Discover calls f.
func (f DiscovererFunc) Discover(ctx context.Context) (string, error) { return f(ctx) }

// Resolver is the entry point turning a config path, or nothing, into a
// validated GroupMap. A Resolver holds no per-load state and may be shared
// between goroutines.
type Resolver struct {
	// FS is where config paths are read from.
	FS fs.FS
	// Discoverer is consulted when Resolve gets an empty path. May be nil.
	Discoverer Discoverer
	// Registry routes documents to the builder for their version.
	Registry *BuilderRegistry
	// Options are passed to every build.
	Options BuildOptions
}

// NewResolver reads from the host file system and knows every built-in
// schema version.
func NewResolver(discoverer Discoverer) *Resolver {
	return &Resolver{
		FS:         OSFS(),
		Discoverer: discoverer,
		Registry:   DefaultRegistry(),
		Options:    DefaultBuildOptions(),
	}
}

// Resolve loads the config at path, discovering one first if path is empty,
// and builds its GroupMap. It returns either a complete map or an error.
func (r *Resolver) Resolve(ctx context.Context, path string) (layout.GroupMap, error) {
	logger := ctxlog.FromContext(ctx)

	doc, err := r.Load(ctx, path)
	if err != nil {
		logger.Error("Failed to load LED config", "path", path, "error", err)
		return nil, err
	}

	ledMap, err := r.Registry.Dispatch(ctx, doc, r.Options)
	if err != nil {
		logger.Error("Failed to build LED groups", "path", doc.Path(), "error", err)
		return nil, err
	}

	logger.Info("LED config loaded", "path", doc.Path(), "groups", len(ledMap), "members", ledMap.Members())

	return ledMap, nil
}

// Load resolves path, discovering one if empty, and reads the document
// without building it.
func (r *Resolver) Load(ctx context.Context, path string) (*Document, error) {
	if path == "" {
		discovered, err := r.discover(ctx)
		if err != nil {
			return nil, err
		}

		path = discovered
	}

	return LoadFile(r.FS, path)
}

func (r *Resolver) discover(ctx context.Context) (string, error) {
	if r.Discoverer == nil {
		return "", &MissingFileError{}
	}

	path, err := r.Discoverer.Discover(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to discover LED config: %w", err)
	}

	if path == "" {
		return "", &MissingFileError{}
	}

	ctxlog.FromContext(ctx).Debug("Discovered LED config", "path", path)

	return path, nil
}

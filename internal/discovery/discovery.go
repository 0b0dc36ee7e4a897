// Package discovery locates the LED group config when none is given on the
// command line.
//
// The lookup order is:
//
//  1. <OverrideDir>/led-group-config.json
//  2. <BaseDir>/<name>/led-group-config.json for each compatible system name
//  3. <BaseDir>/led-group-config.json
//
// Compatible names come from a CompatibleSource, normally the inventory
// objects implementing xyz.openbmc_project.Inventory.Decorator.Compatible.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"led-layout/internal/ctxlog"
	"led-layout/internal/ledconfig"
)

const (
	ConfFileName        = "led-group-config.json"
	OverrideDir         = "/etc/phosphor-led-manager"
	BaseDir             = "/usr/share/phosphor-led-manager"
	CompatibleInterface = "xyz.openbmc_project.Inventory.Decorator.Compatible"
	CompatibleProperty  = "Names"
)

// ErrNotFound is returned when no candidate config file exists.
var ErrNotFound = errors.New("no LED group config found")

// CompatibleSource lists the compatible system names, most specific first.
type CompatibleSource interface {
	CompatibleNames(ctx context.Context) ([]string, error)
}

// CompatibleWatcher is implemented by sources that can report names which
// appear later. The channel is closed when ctx is done.
type CompatibleWatcher interface {
	WatchCompatible(ctx context.Context) (<-chan []string, error)
}

// StaticSource is a fixed list of compatible names.
type StaticSource []string

// CompatibleNames returns a copy of s.
func (s StaticSource) CompatibleNames(context.Context) ([]string, error) {
	return slices.Clone(s), nil
}

// Finder searches for the config file. The zero value searches nothing;
// use NewFinder for the standard directories.
type Finder struct {
	FS          fs.FS
	OverrideDir string
	BaseDir     string
	Source      CompatibleSource
	// Wait blocks until compatible names are published when the source has
	// none yet. It needs a Source that implements CompatibleWatcher.
	Wait bool
}

var _ ledconfig.Discoverer = (*Finder)(nil)

// NewFinder searches the standard directories on the host file system.
func NewFinder(source CompatibleSource) *Finder {
	return &Finder{
		FS:          ledconfig.OSFS(),
		OverrideDir: OverrideDir,
		BaseDir:     BaseDir,
		Source:      source,
	}
}

// Discover returns the path of the first candidate file that exists.
func (f *Finder) Discover(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	override := path.Join(f.OverrideDir, ConfFileName)
	if f.exists(override) {
		logger.Debug("Using override LED config", "path", override)
		return override, nil
	}

	names, err := f.compatibleNames(ctx)
	if err != nil {
		return "", err
	}

	for _, candidate := range f.Candidates(names)[1:] {
		logger.Debug("Checking LED config candidate", "path", candidate)

		if f.exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w (compatible names: %v)", ErrNotFound, names)
}

// Candidates returns every path Discover checks for names, in order.
func (f *Finder) Candidates(names []string) []string {
	out := make([]string, 0, len(names)+2)
	out = append(out, path.Join(f.OverrideDir, ConfFileName))

	for _, name := range names {
		out = append(out, path.Join(f.BaseDir, name, ConfFileName))
	}

	return append(out, path.Join(f.BaseDir, ConfFileName))
}

func (f *Finder) compatibleNames(ctx context.Context) ([]string, error) {
	if f.Source == nil {
		return nil, nil
	}

	watcher, watchable := f.Source.(CompatibleWatcher)
	if !f.Wait || !watchable {
		names, err := f.Source.CompatibleNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get compatible names: %w", err)
		}

		if len(names) == 0 && f.Wait {
			ctxlog.FromContext(ctx).Warn("Compatible source cannot be watched, not waiting")
		}

		return names, nil
	}

	// Subscribe before querying so names published in between are not missed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := watcher.WatchCompatible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to watch compatible names: %w", err)
	}

	names, err := f.Source.CompatibleNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get compatible names: %w", err)
	}

	if len(names) > 0 {
		return names, nil
	}

	ctxlog.FromContext(ctx).Info("Waiting for compatible system names")

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed waiting for compatible names: %w", ctx.Err())
		case names, ok := <-updates:
			if !ok {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("failed waiting for compatible names: %w", err)
				}

				return nil, errors.New("compatible name watch ended")
			}

			if len(names) > 0 {
				return names, nil
			}
		}
	}
}

func (f *Finder) exists(name string) bool {
	if f.FS == nil {
		return false
	}

	info, err := fs.Stat(f.FS, name)

	return err == nil && !info.IsDir()
}

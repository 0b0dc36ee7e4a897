package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOverride = "etc/phosphor-led-manager"
	testBase     = "usr/share/phosphor-led-manager"
)

func file() *fstest.MapFile { return &fstest.MapFile{Data: []byte(`{}`)} }

func newTestFinder(files fstest.MapFS, source CompatibleSource) *Finder {
	return &Finder{
		FS:          files,
		OverrideDir: testOverride,
		BaseDir:     testBase,
		Source:      source,
	}
}

func TestFinder_Candidates(t *testing.T) {
	f := NewFinder(nil)

	assert.Equal(t, []string{
		"/etc/phosphor-led-manager/led-group-config.json",
		"/usr/share/phosphor-led-manager/com.acme.A/led-group-config.json",
		"/usr/share/phosphor-led-manager/com.acme/led-group-config.json",
		"/usr/share/phosphor-led-manager/led-group-config.json",
	}, f.Candidates([]string{"com.acme.A", "com.acme"}))
}

func TestFinder_Discover(t *testing.T) {
	names := StaticSource{"com.acme.Model.X", "com.acme.Model"}

	tests := []struct {
		name   string
		files  fstest.MapFS
		source CompatibleSource
		want   string
	}{
		{
			name: "override wins",
			files: fstest.MapFS{
				testOverride + "/led-group-config.json":              file(),
				testBase + "/com.acme.Model.X/led-group-config.json": file(),
				testBase + "/led-group-config.json":                  file(),
			},
			source: names,
			want:   testOverride + "/led-group-config.json",
		},
		{
			name: "most specific compatible name",
			files: fstest.MapFS{
				testBase + "/com.acme.Model.X/led-group-config.json": file(),
				testBase + "/com.acme.Model/led-group-config.json":   file(),
				testBase + "/led-group-config.json":                  file(),
			},
			source: names,
			want:   testBase + "/com.acme.Model.X/led-group-config.json",
		},
		{
			name: "later compatible name",
			files: fstest.MapFS{
				testBase + "/com.acme.Model/led-group-config.json": file(),
				testBase + "/led-group-config.json":                file(),
			},
			source: names,
			want:   testBase + "/com.acme.Model/led-group-config.json",
		},
		{
			name: "default file",
			files: fstest.MapFS{
				testBase + "/led-group-config.json": file(),
			},
			source: names,
			want:   testBase + "/led-group-config.json",
		},
		{
			name: "no source",
			files: fstest.MapFS{
				testBase + "/led-group-config.json": file(),
			},
			want: testBase + "/led-group-config.json",
		},
		{
			name: "directory is not a config",
			files: fstest.MapFS{
				testOverride + "/led-group-config.json/x": file(),
				testBase + "/led-group-config.json":       file(),
			},
			want: testBase + "/led-group-config.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestFinder(tt.files, tt.source).Discover(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinder_NotFound(t *testing.T) {
	_, err := newTestFinder(fstest.MapFS{}, StaticSource{"com.acme"}).Discover(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "com.acme")

	_, err = (&Finder{}).Discover(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

type failingSource struct{ err error }

func (s failingSource) CompatibleNames(context.Context) ([]string, error) { return nil, s.err }

func TestFinder_SourceError(t *testing.T) {
	boom := errors.New("mapper down")

	_, err := newTestFinder(fstest.MapFS{}, failingSource{err: boom}).Discover(context.Background())
	require.ErrorIs(t, err, boom)

	// The override is used without asking the source.
	got, err := newTestFinder(fstest.MapFS{
		testOverride + "/led-group-config.json": file(),
	}, failingSource{err: boom}).Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testOverride+"/led-group-config.json", got)
}

// watchSource has no names until it publishes them on its watch channel.
type watchSource struct {
	updates [][]string
}

func (s *watchSource) CompatibleNames(context.Context) ([]string, error) { return nil, nil }

func (s *watchSource) WatchCompatible(ctx context.Context) (<-chan []string, error) {
	out := make(chan []string)

	go func() {
		defer close(out)

		for _, names := range s.updates {
			select {
			case out <- names:
			case <-ctx.Done():
				return
			}
		}

		<-ctx.Done()
	}()

	return out, nil
}

func TestFinder_Wait(t *testing.T) {
	files := fstest.MapFS{
		testBase + "/com.acme.Late/led-group-config.json": file(),
		testBase + "/led-group-config.json":               file(),
	}

	t.Run("names published later", func(t *testing.T) {
		f := newTestFinder(files, &watchSource{updates: [][]string{{}, {"com.acme.Late"}}})
		f.Wait = true

		got, err := f.Discover(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testBase+"/com.acme.Late/led-group-config.json", got)
	})

	t.Run("without wait the default is used", func(t *testing.T) {
		f := newTestFinder(files, &watchSource{updates: [][]string{{"com.acme.Late"}}})

		got, err := f.Discover(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testBase+"/led-group-config.json", got)
	})

	t.Run("timeout", func(t *testing.T) {
		f := newTestFinder(files, &watchSource{})
		f.Wait = true

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := f.Discover(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("source cannot be watched", func(t *testing.T) {
		f := newTestFinder(files, StaticSource{})
		f.Wait = true

		got, err := f.Discover(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testBase+"/led-group-config.json", got)
	})
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	s := StaticSource{"a", "b"}

	names, err := s.CompatibleNames(context.Background())
	require.NoError(t, err)

	names[0] = "z"
	assert.Equal(t, StaticSource{"a", "b"}, s)
}

// busSource behaves like the inventory on a bus: names published while
// nobody is subscribed are lost. Its names appear right after the first
// query has been answered.
type busSource struct {
	mu          sync.Mutex
	subscribers []chan []string
	queries     int
}

func (s *busSource) CompatibleNames(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries++

	for _, ch := range s.subscribers {
		ch <- []string{"sys1"}
	}

	return nil, nil
}

func (s *busSource) WatchCompatible(context.Context) (<-chan []string, error) {
	ch := make(chan []string, 1)

	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()

	return ch, nil
}

func TestFinder_WaitSubscribesBeforeQuery(t *testing.T) {
	files := fstest.MapFS{
		testBase + "/sys1/led-group-config.json": file(),
		testBase + "/led-group-config.json":      file(),
	}

	source := &busSource{}

	f := newTestFinder(files, source)
	f.Wait = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := f.Discover(ctx)
	require.NoError(t, err)
	assert.Equal(t, testBase+"/sys1/led-group-config.json", got)
	assert.Equal(t, 1, source.queries)
}

// countingWatcher has names already and records whether its watch was
// released.
type countingWatcher struct {
	released chan struct{}
}

func (s *countingWatcher) CompatibleNames(context.Context) ([]string, error) {
	return []string{"com.acme.Late"}, nil
}

func (s *countingWatcher) WatchCompatible(ctx context.Context) (<-chan []string, error) {
	go func() {
		<-ctx.Done()
		close(s.released)
	}()

	return make(chan []string), nil
}

func TestFinder_WaitReleasesWatchWhenNamesPresent(t *testing.T) {
	source := &countingWatcher{released: make(chan struct{})}

	f := newTestFinder(fstest.MapFS{
		testBase + "/com.acme.Late/led-group-config.json": file(),
	}, source)
	f.Wait = true

	got, err := f.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBase+"/com.acme.Late/led-group-config.json", got)

	select {
	case <-source.released:
	case <-time.After(time.Second):
		t.Fatal("watch was not cancelled")
	}
}

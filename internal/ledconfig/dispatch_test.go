package ledconfig

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"led-layout/internal/ctxlog"
	"led-layout/internal/layout"
)

func TestBuilderRegistry_Default(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []int64{1}, r.Versions())
	assert.IsType(t, BuilderV1{}, r.Get(1))
	assert.Nil(t, r.Get(2))
}

func TestBuilderRegistry_RegisterTwicePanics(t *testing.T) {
	r := DefaultRegistry()

	assert.Panics(t, func() { r.Register(1, BuilderV1{}) })
}

func TestBuilderRegistry_Dispatch(t *testing.T) {
	r := DefaultRegistry()

	var seen int64

	r.Register(2, BuilderFunc(func(_ context.Context, doc *Document, _ BuildOptions) (layout.GroupMap, error) {
		seen = doc.Version()
		return layout.GroupMap{"/v2": {}}, nil
	}))

	assert.Equal(t, []int64{1, 2}, r.Versions())

	doc, err := Parse([]byte(`{"version": 2}`))
	require.NoError(t, err)

	ledMap, err := r.Dispatch(context.Background(), doc, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(2), seen)
	assert.Equal(t, []string{"/v2"}, ledMap.Paths())
}

func TestBuilderRegistry_UnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("debug", "text", &buf))

	for _, version := range []string{"0", "2", "-1"} {
		t.Run(version, func(t *testing.T) {
			doc, err := Parse([]byte(`{"version": ` + version + `, "leds": []}`))
			require.NoError(t, err)

			ledMap, err := DefaultRegistry().Dispatch(ctx, doc, DefaultBuildOptions())
			require.ErrorIs(t, err, ErrUnsupportedVersion)
			assert.Nil(t, ledMap)

			var unsupported *UnsupportedVersionError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, doc.Version(), unsupported.Version)
		})
	}

	assert.Contains(t, buf.String(), "Unsupported LED config version")
}

package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, read func() (string, error), write func(string) error, ok bool) {
	t.Helper()
	oldRead, oldWrite, oldSupported := readAll, writeAll, supported
	readAll, writeAll = read, write
	supported = func() bool { return ok }
	t.Cleanup(func() { readAll, writeAll, supported = oldRead, oldWrite, oldSupported })
}

func TestSystemClipboard(t *testing.T) {
	var written string
	stub(t,
		func() (string, error) { return "https://www.amazon.com/dp/B0AAAAAAAA", nil },
		func(s string) error { written = s; return nil },
		true,
	)

	c := New()
	text, err := c.ReadText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com/dp/B0AAAAAAAA", text)

	require.NoError(t, c.WriteText(context.Background(), "copied"))
	assert.Equal(t, "copied", written)
}

func TestSystemClipboardUnavailable(t *testing.T) {
	stub(t,
		func() (string, error) { return "", errors.New("xclip missing") },
		func(string) error { return errors.New("xclip missing") },
		false,
	)

	c := New()
	_, err := c.ReadText(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, c.WriteText(context.Background(), "x"), ErrUnsupported)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ReadText(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

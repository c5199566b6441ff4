package dialog

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPicker(sel SelectFunc) *ModelPicker {
	p := NewModelPicker(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.Select = sel
	return p
}

func TestPickerDeliversPath(t *testing.T) {
	release := make(chan struct{})
	p := newPicker(func() (string, error) {
		<-release
		return "/tmp/animal.obj", nil
	})

	require.True(t, p.Open())
	assert.True(t, p.Busy())
	assert.False(t, p.Open(), "second dialog while one is showing")
	_, ok := p.Poll()
	assert.False(t, ok)

	close(release)
	var path string
	require.Eventually(t, func() bool {
		path, ok = p.Poll()
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "/tmp/animal.obj", path)
	require.Eventually(t, func() bool { return !p.Busy() }, time.Second, 5*time.Millisecond)
}

func TestPickerCancelAndError(t *testing.T) {
	for _, err := range []error{zenity.ErrCanceled, errors.New("no display")} {
		done := make(chan struct{})
		p := newPicker(func() (string, error) {
			defer close(done)
			return "", err
		})
		require.True(t, p.Open())
		<-done
		require.Eventually(t, func() bool { return !p.Busy() }, time.Second, 5*time.Millisecond)
		_, ok := p.Poll()
		assert.False(t, ok)
	}
}

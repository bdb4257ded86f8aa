package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	testDebounce = 50 * time.Millisecond
	waitTimeout  = 5 * time.Second
	quietPeriod  = 300 * time.Millisecond
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// start runs w in the background, signalling each pass on the returned
// channel. The returned func cancels the run and returns its error.
func start(t *testing.T, w *Watcher, fn SyncFunc) (<-chan struct{}, func() error) {
	t.Helper()
	calls := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx, func(ctx context.Context) error {
			calls <- struct{}{}
			if fn != nil {
				return fn(ctx)
			}
			return nil
		})
	}()

	return calls, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(waitTimeout):
			t.Fatal("watcher did not stop")
			return nil
		}
	}
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(waitTimeout):
		t.Fatal("no sync pass after change")
	}
}

func assertQuiet(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
		t.Fatal("unexpected sync pass")
	case <-time.After(quietPeriod):
	}
}

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRunSyncsAfterChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, err := New(root, WithDebounce(testDebounce), WithLogger(quietLogger()))
	require.NoError(t, err)

	calls, stop := start(t, w, nil)
	write(t, filepath.Join(root, "vapour.md"), "---\ntype: standard\n---\n")

	waitCall(t, calls)
	require.NoError(t, stop())
}

func TestBurstsAreCoalesced(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, err := New(root, WithDebounce(200*time.Millisecond), WithLogger(quietLogger()))
	require.NoError(t, err)

	calls, stop := start(t, w, nil)
	for _, name := range []string{"a.md", "b.md", "c.md", "d.md"} {
		write(t, filepath.Join(root, name), name)
	}

	waitCall(t, calls)
	assertQuiet(t, calls)
	require.NoError(t, stop())
}

func TestIgnoredAndHiddenPathsDoNotTrigger(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "drafts"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	w, err := New(root,
		WithDebounce(testDebounce),
		WithIgnore("drafts/**", "drafts"),
		WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	calls, stop := start(t, w, nil)
	write(t, filepath.Join(root, "drafts", "wip.md"), "wip")
	write(t, filepath.Join(root, ".git", "HEAD"), "ref")
	write(t, filepath.Join(root, ".vapour.md.swp"), "swap")
	assertQuiet(t, calls)

	write(t, filepath.Join(root, "steam.md"), "steam")
	waitCall(t, calls)
	require.NoError(t, stop())
}

func TestNewDirectoriesAreWatched(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, err := New(root, WithDebounce(testDebounce), WithLogger(quietLogger()))
	require.NoError(t, err)

	calls, stop := start(t, w, nil)
	sub := filepath.Join(root, "standards")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitCall(t, calls)

	write(t, filepath.Join(sub, "vapour.md"), "vapour")
	waitCall(t, calls)
	require.NoError(t, stop())
}

func TestRunStopsOnSyncError(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, err := New(root, WithDebounce(testDebounce), WithLogger(quietLogger()))
	require.NoError(t, err)

	boom := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context) error { return boom })
	}()

	write(t, filepath.Join(root, "vapour.md"), "vapour")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(waitTimeout):
		t.Fatal("watcher did not stop on error")
	}
}

func TestNewErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := New(t.TempDir(), WithDebounce(0))
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), WithLogger(quietLogger()))
	assert.Error(t, err)
}

func TestCloseWithoutRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(t.TempDir(), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

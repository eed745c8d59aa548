package emitter

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/familyai/adminui/internal/foundation/errors"
	"git.home.luguber.info/familyai/adminui/internal/metrics"
	"git.home.luguber.info/familyai/adminui/internal/page"
)

func readIndex(t *testing.T, dir string) []byte {
	t.Helper()
	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(filepath.Join(dir, page.FileName))
	require.NoError(t, err)
	return data
}

func TestEmitCreatesNestedDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, Emit(out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, page.Document(), readIndex(t, out))
}

func TestEmitExistingDirectoryIsNotAnError(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "other.txt"), []byte("keep"), 0o600))

	require.NoError(t, Emit(out))

	other, err := os.ReadFile(filepath.Join(out, "other.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(other))
}

func TestEmitIsIdempotent(t *testing.T) {
	once := t.TempDir()
	many := t.TempDir()

	require.NoError(t, Emit(once))
	for i := 0; i < 3; i++ {
		require.NoError(t, Emit(many))
	}

	assert.Equal(t, readIndex(t, once), readIndex(t, many))

	entries, err := os.ReadDir(many)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, page.FileName, entries[0].Name())
}

func TestEmitOverwritesPriorContent(t *testing.T) {
	tests := []struct {
		name  string
		prior []byte
	}{
		{"longer than document", bytes.Repeat([]byte("stale "), page.Size())},
		{"shorter than document", []byte("<p>old</p>")},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(out, page.FileName), tt.prior, 0o600))

			require.NoError(t, Emit(out))

			assert.Equal(t, page.Document(), readIndex(t, out))
		})
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	require.NoError(t, Emit(a))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, Emit(b))

	assert.Equal(t, readIndex(t, a), readIndex(t, b))
}

func TestEmitContentContractInWorkingDirectory(t *testing.T) {
	{
		prev, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(prev) })
	}

	dir, err := DefaultOutputDir()
	require.NoError(t, err)
	assert.Equal(t, DefaultDirName, filepath.Base(dir))

	require.NoError(t, Emit(dir))

	data, err := os.ReadFile(filepath.Join("dist", "index.html"))
	require.NoError(t, err)
	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "<!doctype html>"))
	assert.Contains(t, doc, "GET /models")
	assert.Contains(t, doc, "POST /recommend")
	assert.Contains(t, doc, "GET /profiles")
	require.NoError(t, page.Validate(data))
}

func TestEmitFailsWhenParentIsAFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := Emit(filepath.Join(blocker, "dist"))

	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestEmitFailsWhenTargetIsADirectory(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(out, page.FileName), 0o750))

	err := Emit(out)

	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestEmitFailsWithoutWritePermission(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	ro := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(ro, 0o500))
	t.Cleanup(func() { _ = os.Chmod(ro, 0o700) })

	for _, out := range []string{ro, filepath.Join(ro, "nested", "dist")} {
		err := Emit(out)
		require.Error(t, err, out)
		assert.True(t, errors.Is(err, fs.ErrPermission), out)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem), out)

		_, statErr := os.Stat(filepath.Join(out, page.FileName))
		assert.True(t, errors.Is(statErr, fs.ErrNotExist), out)
	}
}

type countingRecorder struct {
	durations int
	outcomes  map[metrics.Outcome]int
	bytes     int
}

func (c *countingRecorder) ObserveEmitDuration(time.Duration) { c.durations++ }
func (c *countingRecorder) IncEmitOutcome(o metrics.Outcome) {
	if c.outcomes == nil {
		c.outcomes = map[metrics.Outcome]int{}
	}
	c.outcomes[o]++
}
func (c *countingRecorder) SetDocumentBytes(n int) { c.bytes = n }

func TestEmitRecordsMetricsAndLogs(t *testing.T) {
	var logs bytes.Buffer
	rec := &countingRecorder{}
	e := NewEmitter().
		SetRecorder(rec).
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	e.newRunID = func() string { return "run-1" }

	base := t.TempDir()
	require.NoError(t, e.Emit(filepath.Join(base, "dist")))

	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	require.Error(t, e.Emit(filepath.Join(blocker, "dist")))

	assert.Equal(t, 2, rec.durations)
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeSuccess])
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeFailed])
	assert.Equal(t, page.Size(), rec.bytes)
	assert.Contains(t, logs.String(), "run_id=run-1")
	assert.Contains(t, logs.String(), "Admin UI page written")
}

func TestSetRecorderNilFallsBackToNoop(t *testing.T) {
	e := NewEmitter().SetRecorder(nil)
	assert.Equal(t, metrics.NoopRecorder{}, e.recorder)
	require.NoError(t, e.Emit(t.TempDir()))
}

func TestVerify(t *testing.T) {
	out := t.TempDir()
	e := NewEmitter()

	err := e.Verify(out)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, e.Emit(out))
	require.NoError(t, e.Verify(out))

	require.NoError(t, os.WriteFile(Target(out), []byte("<p>tampered</p>"), 0o600))
	err = e.Verify(out)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.True(t, errors.Is(err, ErrContentMismatch))
	assert.True(t, errors.Is(err, page.ErrContract))
}

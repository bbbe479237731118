package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := With(NewText(&buf, slog.LevelDebug), "command", "git_status")
	l.Info("invoked", "requestID", "abc")
	out := buf.String()
	require.Contains(t, out, "command=git_status")
	require.Contains(t, out, "requestID=abc")

	// Nop stays a no-op.
	With(Nop(), "k", "v").Info("ignored")
}

type recordingLogger struct {
	mu      sync.Mutex
	records [][]any
}

func (r *recordingLogger) record(args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, args)
}

func (r *recordingLogger) Debug(_ string, args ...any) { r.record(args) }
func (r *recordingLogger) Info(_ string, args ...any)  { r.record(args) }
func (r *recordingLogger) Warn(_ string, args ...any)  { r.record(args) }
func (r *recordingLogger) Error(_ string, args ...any) { r.record(args) }

func TestWithDoesNotShareFieldsBetweenCalls(t *testing.T) {
	base := make([]any, 0, 8)
	base = append(base, "component", "git")
	rec := &recordingLogger{}
	l := With(rec, base...)

	l.Info("first", "requestID", "a")
	l.Info("second", "requestID", "b")
	require.Equal(t, []any{"component", "git", "requestID", "a"}, rec.records[0])
	require.Equal(t, []any{"component", "git", "requestID", "b"}, rec.records[1])

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Warn("concurrent", "n", i)
		}(i)
	}
	wg.Wait()
	for _, r := range rec.records[2:] {
		require.Len(t, r, 4)
		require.Equal(t, "component", r[0])
		require.Equal(t, "n", r[2])
	}
}

func TestTeeWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "gorgon.log")
	l, closer, err := Tee(&console, "text", path, slog.LevelInfo, Rotation{})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Warn("command failed", "command", "read_file", "error", "boom")
	require.NoError(t, closer.Close())

	require.Contains(t, console.String(), "command failed")
	require.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "command failed", rec["msg"])
	require.Equal(t, "read_file", rec["command"])
}

func TestTeeWithoutFileIsConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	l, closer, err := Tee(&console, "json", "", slog.LevelInfo, Rotation{})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, closer.Close())
	var rec map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
}

func TestRotationDefaults(t *testing.T) {
	r := Rotation{}.withDefaults()
	require.Equal(t, Rotation{MaxSizeMB: 5, MaxBackups: 3, MaxAgeDays: 30}, r)
	r = Rotation{MaxSizeMB: 1, MaxBackups: -1, MaxAgeDays: 7}.withDefaults()
	require.Equal(t, Rotation{MaxSizeMB: 1, MaxBackups: 0, MaxAgeDays: 7}, r)
}

func TestTrackLogsFailuresWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelDebug)

	done := Track(l, "delete_file", "path", "/tmp/x")
	boom := os.ErrNotExist
	require.Equal(t, boom, done(boom))

	out := buf.String()
	require.Contains(t, out, "command=delete_file")
	require.Contains(t, out, "requestID=")
	require.Contains(t, out, "command failed")
	require.Contains(t, out, "path=/tmp/x")

	require.NoError(t, Track(nil, "file_exists")(nil))
}

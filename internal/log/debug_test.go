package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetDebugLogger(t *testing.T) func() {
	t.Helper()

	globalDebugLogger.mu.Lock()
	prevFile := globalDebugLogger.file
	prevBuffer := append([]byte(nil), globalDebugLogger.buffer...)
	prevDiscard := globalDebugLogger.discard
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.mu.Unlock()

	return func() {
		globalDebugLogger.mu.Lock()
		if globalDebugLogger.file != nil {
			_ = globalDebugLogger.file.Close()
		}
		globalDebugLogger.file = prevFile
		globalDebugLogger.buffer = prevBuffer
		globalDebugLogger.discard = prevDiscard
		globalDebugLogger.mu.Unlock()
	}
}

func TestBufferedLogsFlushToFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("classified %s", "alpha")
	Logger().Debug("fetch", zap.String("cwd", "/tmp/alpha"))

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	Println("after file")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "classified alpha")
	assert.Contains(t, content, "/tmp/alpha")
	assert.Contains(t, content, "after file")
}

func TestEmptyPathDiscardsLogs(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("buffered")
	require.NoError(t, SetFile(""))

	globalDebugLogger.mu.Lock()
	bufferLen := len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()
	assert.Zero(t, bufferLen)

	Printf("dropped")
	globalDebugLogger.mu.Lock()
	bufferLen = len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()
	assert.Zero(t, bufferLen)
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	restore := resetDebugLogger(t)
	t.Cleanup(restore)

	unwritableDir := t.TempDir()
	if err := os.Chmod(unwritableDir, 0o500); err != nil { //nolint:gosec
		t.Fatalf("set directory permissions: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(unwritableDir, 0o700) //nolint:gosec
	})
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	logPath := filepath.Join(unwritableDir, "debug.log")
	if err := SetFile(logPath); err == nil {
		t.Fatalf("expected SetFile to fail for %q", logPath)
	}

	globalDebugLogger.mu.Lock()
	discard := globalDebugLogger.discard
	bufferLen := len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()

	if !discard {
		t.Fatalf("expected discard to be enabled after SetFile failure")
	}
	if bufferLen != 0 {
		t.Fatalf("expected buffer to be cleared after SetFile failure")
	}
}

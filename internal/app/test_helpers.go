package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/mlcbuild/internal/backend"
	"github.com/vk/mlcbuild/internal/target"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance with debug logging captured in a
// buffer. Set MLCBUILD_TEST_LOGS=true to print the logs after each test.
func SetupAppTest(t *testing.T, cfg *Config, env target.Environment, be backend.Backend) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(logBuffer, cfg, env, be)

	t.Cleanup(func() {
		if os.Getenv("MLCBUILD_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}

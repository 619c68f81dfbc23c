package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/beanbridge/internal/registry"
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

// SetupAppTest creates a new app instance for system testing. The app gets
// its own secondary registry so tests never share the platform registry.
func SetupAppTest(t *testing.T, cfg *Config, opts ...Option) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	opts = append([]Option{WithSecondary(registry.New(registry.PlatformDomain))}, opts...)
	testApp := NewApp(logBuffer, cfg, opts...)

	t.Cleanup(func() {
		if err := testApp.Close(); err != nil {
			t.Errorf("closing app: %v", err)
		}
		if os.Getenv("BEANBRIDGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}

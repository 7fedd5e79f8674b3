package frontend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/reflectrpteam/luau/internal/config"
)

// fakeLogger records every call so tests can assert on log content
// without depending on log.Default()'s process-wide output stream.
type fakeLogger struct {
	printfs []string
	errorfs []string
}

func (l *fakeLogger) Printf(format string, args ...interface{}) {
	l.printfs = append(l.printfs, fmt.Sprintf(format, args...))
}

func (l *fakeLogger) Errorf(format string, args ...interface{}) {
	l.errorfs = append(l.errorfs, fmt.Sprintf(format, args...))
}

func TestNewDefaultsToStdLogger(t *testing.T) {
	f := New(config.FeatureFlags{}, config.DefaultLimits())
	if f.Logger == nil {
		t.Fatal("expected New to default Logger to a non-nil std logger")
	}
}

func TestMarkDirtyLogsTheMarkedModule(t *testing.T) {
	f := New(config.FeatureFlags{}, config.DefaultLimits())
	logger := &fakeLogger{}
	f.Logger = logger
	f.AddSource("a", program())

	f.MarkDirty("a")

	found := false
	for _, line := range logger.printfs {
		if strings.Contains(line, `"a"`) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a log line naming module %q, got %v", "a", logger.printfs)
	}
}

func TestCheckLogsCacheHit(t *testing.T) {
	fc := &fakeCache{clean: map[string]string{}}
	f := New(config.FeatureFlags{}, config.DefaultLimits())
	logger := &fakeLogger{}
	f.Logger = logger
	f.Cache = fc
	f.AddSourceWithHash("a", program(), "hash-v1")

	if _, err := f.Check(NewRequest("a", ViewNormal)); err != nil {
		t.Fatal(err)
	}
	f.MarkDirty("a")
	f.AddSourceWithHash("a", program(), "hash-v1")
	if _, err := f.Check(NewRequest("a", ViewNormal)); err != nil {
		t.Fatal(err)
	}

	found := false
	for _, line := range logger.printfs {
		if strings.Contains(line, "cache hit") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cache-hit log line, got %v", logger.printfs)
	}
}

func TestCheckLogsCyclicDependency(t *testing.T) {
	f := New(config.FeatureFlags{}, config.DefaultLimits())
	logger := &fakeLogger{}
	f.Logger = logger
	f.AddSource("a", program(requireStat("b")))
	f.AddSource("b", program(requireStat("a")))

	if _, err := f.Check(NewRequest("a", ViewNormal)); err != nil {
		t.Fatal(err)
	}

	if len(logger.errorfs) == 0 {
		t.Fatal("expected Check to log an error for the cyclic dependency")
	}
}

func TestNilLoggerDoesNotPanic(t *testing.T) {
	// Logger is nil-guarded: a Frontend with Logger explicitly cleared
	// must not panic on MarkDirty or Check.
	f := New(config.FeatureFlags{}, config.DefaultLimits())
	f.Logger = nil
	f.AddSource("a", program(requireStat("b")))
	f.AddSource("b", program(requireStat("a")))
	f.MarkDirty("a")
	if _, err := f.Check(NewRequest("a", ViewNormal)); err != nil {
		t.Fatal(err)
	}
}

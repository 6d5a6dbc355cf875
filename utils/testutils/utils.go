package testutils

import (
	"testing"

	"github.com/benoitkugler/foprops/logger"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(exp, got, opts...); diff != "" {
		t.Fatalf("unexpected value (-want +got):\n%s", diff)
	}
}

// CapturedLogs records the warnings emitted through [logger.WarningLogger].
type CapturedLogs struct {
	observed *observer.ObservedLogs
	restore  func()
}

// CaptureLogs redirects the loggers until [CapturedLogs.Logs]
// or [CapturedLogs.CheckEqual] is called.
func CaptureLogs() *CapturedLogs {
	core, observed := observer.New(zap.DebugLevel)
	return &CapturedLogs{observed: observed, restore: logger.Replace(core)}
}

// Logs restores the loggers and returns the warning messages.
func (c *CapturedLogs) Logs() []string {
	c.restore()
	var out []string
	for _, entry := range c.observed.FilterLoggerName("foprops.warning").All() {
		out = append(out, entry.Message)
	}
	return out
}

func (c *CapturedLogs) CheckEqual(exp []string, t *testing.T) {
	t.Helper()
	got := c.Logs()
	if len(got) != len(exp) {
		t.Fatalf("expected %d logs, got %d:\n%v", len(exp), len(got), got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("log %d: expected\n%s\n got \n%s", i, exp[i], got[i])
		}
	}
}

package log

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDebugDisabledByDefault(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	os.Unsetenv("SK_DEBUG")
	InitDebug()

	if DebugEnabled {
		t.Error("Debug should be disabled by default")
	}
	if DebugLog == nil {
		t.Error("DebugLog should be a no-op logger, not nil")
	}
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	t.Setenv("SK_DEBUG", "1")

	InitDebug()
	defer CloseDebug()

	if !DebugEnabled {
		t.Error("Debug should be enabled with SK_DEBUG=1")
	}
	if DebugLog == nil {
		t.Error("DebugLog should be initialized")
	}
}

func TestDebugFunction(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil
	Debug("test message %s", "arg")

	DebugEnabled = true
	DebugLog = nil
	Debug("test message %s", "arg")
}

func TestComputeProfiler(t *testing.T) {
	profiler.Reset()

	t.Run("StartCompute returns noop when disabled", func(t *testing.T) {
		DebugEnabled = false
		done := profiler.StartCompute("frame")
		done()

		if len(profiler.causes) != 0 {
			t.Error("Should not record when disabled")
		}
	})

	t.Run("StartCompute records when enabled", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		done := profiler.StartCompute("settle")
		time.Sleep(1 * time.Millisecond)
		done()

		m := profiler.causes["settle"]
		if m == nil {
			t.Fatal("Expected metrics for settle")
		}
		if m.Count != 1 {
			t.Errorf("Expected count 1, got %d", m.Count)
		}
		if m.TotalTime < time.Millisecond {
			t.Errorf("Expected total time >= 1ms, got %v", m.TotalTime)
		}
	})

	t.Run("counts accumulate per cause", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		for i := 0; i < 5; i++ {
			profiler.StartCompute("scroll")()
		}
		profiler.StartCompute("resize")()

		if got := profiler.Count("scroll"); got != 5 {
			t.Errorf("Expected scroll count 5, got %d", got)
		}
		if got := profiler.Count("resize"); got != 1 {
			t.Errorf("Expected resize count 1, got %d", got)
		}
		if got := profiler.Count("missing"); got != 0 {
			t.Errorf("Expected 0 for unknown cause, got %d", got)
		}
	})
}

func TestGetStats(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true

	profiler.RecordView(10 * time.Millisecond)
	profiler.RecordSkip()
	profiler.StartCompute("frame")()

	stats := profiler.GetStats()
	if !strings.Contains(stats, "Compute Profile") {
		t.Error("Expected 'Compute Profile' in stats")
	}
	if !strings.Contains(stats, "frame: count=1") {
		t.Errorf("Expected frame cause in stats, got:\n%s", stats)
	}
	if !strings.Contains(stats, "Skipped (no geometry): 1") {
		t.Errorf("Expected skip count in stats, got:\n%s", stats)
	}

	DebugEnabled = false
	if profiler.GetStats() != "" {
		t.Error("Expected empty stats when disabled")
	}
}

func TestComponentTrace(t *testing.T) {
	DebugEnabled = false
	trace := TraceComponent("test")
	if trace != nil {
		t.Error("Expected nil trace when disabled")
	}
	trace.Event("nil trace is safe")

	DebugEnabled = true
	trace = TraceComponent("test")
	if trace == nil {
		t.Error("Expected non-nil trace when enabled")
	}

	DebugLog = nil
	trace.Event("test event")
	trace.Event("test event with details", "detail1", "detail2")
}

func TestTraceHelpers(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	LayoutTrace("test %s", "arg")
	InputTrace("test %s", "arg")

	DebugEnabled = true
	DebugLog = nil

	LayoutTrace("test %s", "arg")
	InputTrace("test %s", "arg")
	DebugEnabled = false
}

func TestLoggersUsableBeforeInitialize(t *testing.T) {
	InfoLog.Printf("info %d", 1)
	WarningLog.Printf("warning %d", 2)
	ErrorLog.Printf("error %d", 3)
}

package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "selectorkit-debug.log")

// slowComputeThreshold is one frame at 60fps.
const slowComputeThreshold = 16 * time.Millisecond

// InitDebug initializes debug logging if SK_DEBUG=1 is set. Traces and
// recompute metrics go to a separate file in the temp dir.
func InitDebug() {
	if os.Getenv("SK_DEBUG") != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		profiler.LogStats()
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Println("wrote debug logs to " + debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// ComputeProfiler counts position recomputations per cause.
type ComputeProfiler struct {
	mu      sync.RWMutex
	causes  map[string]*CauseMetrics
	skipped int64
	views   int64
	viewDur time.Duration
}

// CauseMetrics tracks recomputes triggered by one cause (frame, settle, scroll...).
type CauseMetrics struct {
	Cause     string
	Count     int64
	TotalTime time.Duration
	MaxTime   time.Duration
	LastAt    time.Time
}

var profiler = &ComputeProfiler{
	causes: make(map[string]*CauseMetrics),
}

// GetProfiler returns the global compute profiler.
func GetProfiler() *ComputeProfiler {
	return profiler
}

// StartCompute begins timing a recompute. Call the returned func when done.
func (p *ComputeProfiler) StartCompute(cause string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.record(cause, time.Since(start))
	}
}

func (p *ComputeProfiler) record(cause string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.causes[cause]
	if !ok {
		m = &CauseMetrics{Cause: cause}
		p.causes[cause] = m
	}
	m.Count++
	m.TotalTime += elapsed
	m.LastAt = time.Now()
	if elapsed > m.MaxTime {
		m.MaxTime = elapsed
	}

	if elapsed > slowComputeThreshold && DebugLog != nil {
		DebugLog.Printf("SLOW COMPUTE (%s): %v", cause, elapsed)
	}
}

// RecordSkip counts a recompute that was skipped because geometry was missing.
func (p *ComputeProfiler) RecordSkip() {
	if !DebugEnabled {
		return
	}
	p.mu.Lock()
	p.skipped++
	p.mu.Unlock()
}

// RecordView records the time taken to render a full view.
func (p *ComputeProfiler) RecordView(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}
	p.mu.Lock()
	p.views++
	p.viewDur += elapsed
	p.mu.Unlock()
}

// Count returns how many recomputes were recorded for cause.
func (p *ComputeProfiler) Count(cause string) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if m, ok := p.causes[cause]; ok {
		return m.Count
	}
	return 0
}

// GetStats returns a summary of recompute statistics.
func (p *ComputeProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Compute Profile ===\n")
	sb.WriteString(fmt.Sprintf("Views rendered: %d\n", p.views))
	if p.views > 0 {
		sb.WriteString(fmt.Sprintf("Avg view time: %v\n", p.viewDur/time.Duration(p.views)))
	}
	sb.WriteString(fmt.Sprintf("Skipped (no geometry): %d\n", p.skipped))

	sb.WriteString("\n--- Causes ---\n")
	var sorted []*CauseMetrics
	for _, m := range p.causes {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	for _, m := range sorted {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.TotalTime / time.Duration(m.Count)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v max=%v\n",
			m.Cause, m.Count, m.TotalTime, avg, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current compute statistics.
func (p *ComputeProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *ComputeProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.causes = make(map[string]*CauseMetrics)
	p.skipped = 0
	p.views = 0
	p.viewDur = 0
}

// ComponentTrace logs lifecycle events for one widget instance.
type ComponentTrace struct {
	component string
	startTime time.Time
}

// TraceComponent creates a new component trace. Returns nil when debug is off;
// a nil trace is safe to use.
func TraceComponent(component string) *ComponentTrace {
	if !DebugEnabled {
		return nil
	}
	return &ComponentTrace{
		component: component,
		startTime: time.Now(),
	}
}

// Event logs a component event.
func (t *ComponentTrace) Event(event string, details ...interface{}) {
	if t == nil || !DebugEnabled || DebugLog == nil {
		return
	}

	elapsed := time.Since(t.startTime)
	if len(details) > 0 {
		DebugLog.Printf("[%s] %s (+%v): %v", t.component, event, elapsed, details)
	} else {
		DebugLog.Printf("[%s] %s (+%v)", t.component, event, elapsed)
	}
}

// LayoutTrace logs placement computations.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

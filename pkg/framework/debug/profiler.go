package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Profiler records timing statistics for named sections.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Count   uint64
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
	Samples int64 // audio frames attributed to this section
}

// Average returns the average time per call.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{measurements: make(map[string]*Measurement)}
}

// Start begins timing a named section that processes frames audio frames.
// Call the returned function when the section ends.
func (p *Profiler) Start(name string, frames int) func() {
	start := time.Now()
	return func() {
		p.record(name, time.Since(start), frames)
	}
}

func (p *Profiler) record(name string, elapsed time.Duration, frames int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Samples += int64(frames)
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// Measurement returns a copy of the measurement for a named section.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	return *m, true
}

// Load returns the processing time of a section as a fraction of the audio
// time it covered at sampleRate. Values above 1 mean slower than real time.
func (p *Profiler) Load(name string, sampleRate float64) float64 {
	m, ok := p.Measurement(name)
	if !ok || m.Samples == 0 || sampleRate <= 0 {
		return 0
	}
	audio := float64(m.Samples) / sampleRate
	return m.Total.Seconds() / audio
}

// Report formats every measurement, sorted by name.
func (p *Profiler) Report(sampleRate float64) string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "no measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: calls=%d total=%v avg=%v min=%v max=%v load=%.2f%%\n",
			name, m.Count, m.Total, m.Average(), m.Min, m.Max, p.Load(name, sampleRate)*100)
	}
	return sb.String()
}

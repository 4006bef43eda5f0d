package profiler

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is one profiler sample covering the frames since the previous sample.
type Stats struct {
	// FPS is the frame rate over the sample window.
	FPS float64
	// HeapMB is the live heap size.
	HeapMB float64
	// AllocRateMB is heap allocation churn in MB per second.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// LastPause and MaxPause are the latest and the longest GC pause since the previous sample.
	LastPause, MaxPause time.Duration
	// SysMB is the memory obtained from the OS by the Go runtime.
	SysMB float64
	// CPUPercent is the process CPU usage; 0 when the platform does not report it.
	CPUPercent float64
	// RSSMB is the process resident set size; 0 when the platform does not report it.
	RSSMB float64
}

// Profiler tracks frame rate, Go runtime memory statistics and process CPU and RSS.
// Samples are written to the shared logger at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	clock func() time.Time
	proc  *process.Process
	last  Stats
}

// NewProfiler creates a new Profiler with the provided options.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		clock:          time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()

	// Process stats are optional; some platforms do not expose them.
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		p.proc = proc
	} else {
		common.Logger().Debug("process stats unavailable", "error", err)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, runtime memory, process CPU and RSS.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.clock()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	s := Stats{FPS: float64(p.frameCount) / elapsed.Seconds()}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	s.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPause = max(s.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	if p.proc != nil {
		if cpu, err := p.proc.CPUPercent(); err == nil {
			s.CPUPercent = cpu
		}
		if mem, err := p.proc.MemoryInfo(); err == nil {
			s.RSSMB = float64(mem.RSS) / 1024 / 1024
		}
	}

	common.Logger().Info("profiler",
		slog.Float64("fps", s.FPS),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb", s.AllocRateMB),
		slog.Uint64("gc", uint64(s.GCCount)),
		slog.Duration("gc_last_pause", s.LastPause),
		slog.Duration("gc_max_pause", s.MaxPause),
		slog.Float64("sys_mb", s.SysMB),
		slog.Float64("cpu_percent", s.CPUPercent),
		slog.Float64("rss_mb", s.RSSMB),
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent sample, or the zero Stats before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}

package system

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of machine and process resource usage
type Stats struct {
	CPUModel    string
	Cores       int
	CPUPercent  float64 // Machine-wide, averaged over the sample window
	MemTotal    uint64
	MemUsed     uint64
	ProcessRSS  uint64
	Goroutines  int
	CollectedAt time.Time
}

// CollectStats samples CPU usage over window. Fields the platform cannot
// report are left zero.
func CollectStats(window time.Duration) Stats {
	s := Stats{
		Cores:       runtime.NumCPU(),
		Goroutines:  runtime.NumGoroutine(),
		CollectedAt: time.Now(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		s.CPUModel = infos[0].ModelName
	}
	if pct, err := cpu.Percent(window, false); err == nil && len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemTotal, s.MemUsed = vm.Total, vm.Used
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			s.ProcessRSS = mi.RSS
		}
	}
	return s
}

// Report formats the snapshot for the performance report
func (s Stats) Report() string {
	return fmt.Sprintf(
		"CPU: %s (%d cores) %.1f%%\n"+
			"Memory: %s / %s | Process RSS: %s\n"+
			"Goroutines: %d\n",
		s.CPUModel, s.Cores, s.CPUPercent,
		FormatBytes(s.MemUsed), FormatBytes(s.MemTotal), FormatBytes(s.ProcessRSS),
		s.Goroutines,
	)
}

// FormatBytes renders n with a binary unit
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

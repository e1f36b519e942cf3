// Package monitor samples the resource usage of the running process.
package monitor

import (
	"fmt"
	"time"
)

// ProcessState is one resource sample of this process and the host memory.
type ProcessState struct {
	PID        int32   `json:"pid"`
	RSSBytes   uint64  `json:"rss_bytes"`
	VMSBytes   uint64  `json:"vms_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	Threads    int32   `json:"threads"`
	Goroutines int     `json:"goroutines"`

	HostMemoryTotalBytes   uint64  `json:"host_memory_total_bytes"`
	HostMemoryUsagePercent float64 `json:"host_memory_usage_percent"`

	Timestamp time.Time `json:"timestamp"`
}

// String formats the sample for a status line.
func (s *ProcessState) String() string {
	return fmt.Sprintf("rss %s · cpu %.1f%% · threads %d · host mem %.0f%%",
		FormatBytes(s.RSSBytes), s.CPUPercent, s.Threads, s.HostMemoryUsagePercent)
}

// FormatBytes formats a byte count with a binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

package monitor

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessMonitor samples the current process.
type ProcessMonitor struct {
	proc *process.Process
	mu   sync.Mutex
}

// NewProcessMonitor creates a monitor for the current process.
func NewProcessMonitor() (*ProcessMonitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcessMonitor{proc: proc}, nil
}

// Snapshot samples memory, CPU and thread usage of the process.
func (m *ProcessMonitor) Snapshot() (*ProcessState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	memInfo, err := m.proc.MemoryInfo()
	if err != nil {
		return nil, err
	}

	// CPU percent since process start
	cpuPercent, err := m.proc.CPUPercent()
	if err != nil {
		return nil, err
	}

	threads, err := m.proc.NumThreads()
	if err != nil {
		return nil, err
	}

	host, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	return &ProcessState{
		PID:                    m.proc.Pid,
		RSSBytes:               memInfo.RSS,
		VMSBytes:               memInfo.VMS,
		CPUPercent:             cpuPercent,
		Threads:                threads,
		Goroutines:             runtime.NumGoroutine(),
		HostMemoryTotalBytes:   host.Total,
		HostMemoryUsagePercent: host.UsedPercent,
		Timestamp:              time.Now(),
	}, nil
}

package monitoring

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthReport is the payload of the health endpoint.
type HealthReport struct {
	Status            string  `json:"status"`
	Uptime            string  `json:"uptime"`
	Sessions          int     `json:"sessions"`
	AIEnabled         bool    `json:"aiEnabled"`
	Goroutines        int     `json:"goroutines"`
	CPUCount          int     `json:"cpuCount,omitempty"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent,omitempty"`
}

// SessionCounter reports the number of live sessions.
type SessionCounter interface {
	Count() int
}

// HealthChecker builds health reports from process and host stats.
type HealthChecker struct {
	started   time.Time
	sessions  SessionCounter
	aiEnabled func() bool
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(sessions SessionCounter, aiEnabled func() bool) *HealthChecker {
	return &HealthChecker{started: time.Now(), sessions: sessions, aiEnabled: aiEnabled}
}

// Report collects a health snapshot. Host stats that cannot be read are left out.
func (h *HealthChecker) Report(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:     "ok",
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Sessions:   h.sessions.Count(),
		AIEnabled:  h.aiEnabled != nil && h.aiEnabled(),
		Goroutines: runtime.NumGoroutine(),
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		report.CPUCount = n
	} else {
		log.Warn().Err(err).Msg("Health: failed to read CPU count")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		report.MemoryUsedPercent = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("Health: failed to read memory stats")
	}

	return report
}

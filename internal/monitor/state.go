// internal/monitor/state.go
package monitor

import (
    "time"

    "netwarden/internal/worker"
)

// sessionState is the control plane's shared mutable session: the
// monitoring flag, the tracked background processes, the active stealth
// profile and the start instant. All fields are guarded by the
// Supervisor's single mutex; mutations happen only inside lifecycle
// operations while it is held.
type sessionState struct {
    monitoring     bool
    processes      []worker.Process
    currentProfile string
    stealthEnabled bool
    startedAt      time.Time
}

// uptime returns elapsed whole seconds since the last successful start,
// zero when not running.
func (s *sessionState) uptime(now time.Time) int64 {
    if !s.monitoring || s.startedAt.IsZero() {
        return 0
    }
    return int64(now.Sub(s.startedAt).Seconds())
}

// Status is the transient monitoring view computed on demand.
//
// The three subsystem flags all mirror the single monitoring flag: the
// supervisor does not health-check the workers independently.
type Status struct {
    IsRunning      bool     `json:"is_running"`
    ARPSpoofing    bool     `json:"arp_spoofing"`
    HTTPSProxy     bool     `json:"https_proxy"`
    DNSCapture     bool     `json:"dns_capture"`
    StealthMode    bool     `json:"stealth_mode"`
    CurrentProfile string   `json:"current_profile"`
    Uptime         int64    `json:"uptime"`
    Errors         []string `json:"errors"`
}

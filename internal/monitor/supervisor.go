// internal/monitor/supervisor.go
package monitor

import (
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/metrics"
    "netwarden/internal/worker"
)

// ErrAlreadyRunning is returned by StartMonitoring when a session is
// already active. Concurrent start attempts fail fast rather than queue.
var ErrAlreadyRunning = errors.New("monitoring is already running")

// workerLaunch is one entry of the fixed startup sequence.
type workerLaunch struct {
    worker string
    args   func(iface string) []string
}

var monitoringWorkers = []workerLaunch{
    {"arp_gateway", func(iface string) []string { return []string{"--interface", iface} }},
    {"https_proxy", func(iface string) []string { return []string{"--action", "start"} }},
    {"dns_capture", func(iface string) []string { return []string{"--interface", iface} }},
}

// Supervisor owns the monitoring session: it launches and kills the
// long-running capture workers and answers status queries. One mutex
// guards the whole session state, so only one start/stop transition is in
// flight at a time.
type Supervisor struct {
    launcher worker.Launcher
    settings *config.SettingsStore

    mu    sync.Mutex
    state sessionState
}

func NewSupervisor(launcher worker.Launcher, settings *config.SettingsStore) *Supervisor {
    s := &Supervisor{
        launcher: launcher,
        settings: settings,
    }
    s.state.stealthEnabled = true
    return s
}

// StartMonitoring launches the capture workers in a fixed order,
// parameterized by the configured network interface. Startup is
// transactional: if any launch after the first fails, every process
// launched in this attempt is killed and dropped before the error is
// returned. The system is never left with some but not all workers active.
func (s *Supervisor) StartMonitoring() error {
    s.mu.Lock()
    defer s.mu.Unlock()

    if s.state.monitoring {
        return ErrAlreadyRunning
    }

    settings, err := s.settings.Load()
    if err != nil {
        return fmt.Errorf("failed to load settings: %w", err)
    }
    iface := settings.Interface()

    var launched []worker.Process
    for _, w := range monitoringWorkers {
        proc, err := s.launcher.LaunchBackground(w.worker, w.args(iface)...)
        if err != nil {
            s.killAll(launched)
            return fmt.Errorf("failed to start %s: %w", w.worker, err)
        }
        launched = append(launched, proc)
    }

    s.state.processes = launched
    s.state.monitoring = true
    s.state.stealthEnabled = settings.StealthEnabled
    s.state.startedAt = time.Now()
    metrics.SetMonitoring(true, len(launched))

    logrus.WithFields(logrus.Fields{
        "interface": iface,
        "processes": len(launched),
    }).Info("Monitoring started")
    return nil
}

// StopMonitoring kills every tracked process and clears the session.
// Idempotent: stopping while not running is a no-op.
func (s *Supervisor) StopMonitoring() {
    s.mu.Lock()
    defer s.mu.Unlock()

    s.killAll(s.state.processes)
    s.state.processes = nil
    s.state.monitoring = false
    s.state.startedAt = time.Time{}
    metrics.SetMonitoring(false, 0)

    logrus.Info("Monitoring stopped")
}

// Track adds an independently launched process (such as the certificate
// installer server) to the session so StopMonitoring kills it too.
func (s *Supervisor) Track(proc worker.Process) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.state.processes = append(s.state.processes, proc)
    if s.state.monitoring {
        metrics.SetMonitoring(true, len(s.state.processes))
    }
}

// SetProfile records the active stealth profile for status reporting.
func (s *Supervisor) SetProfile(profileID string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.state.currentProfile = profileID
}

// Status is a pure read of the session state; no external calls are made
// while the lock is held.
func (s *Supervisor) Status() Status {
    s.mu.Lock()
    defer s.mu.Unlock()

    running := s.state.monitoring
    return Status{
        IsRunning:      running,
        ARPSpoofing:    running,
        HTTPSProxy:     running,
        DNSCapture:     running,
        StealthMode:    s.state.stealthEnabled,
        CurrentProfile: s.state.currentProfile,
        Uptime:         s.state.uptime(time.Now()),
        Errors:         []string{},
    }
}

// ProcessCount reports the number of tracked process handles.
func (s *Supervisor) ProcessCount() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.state.processes)
}

func (s *Supervisor) killAll(procs []worker.Process) {
    for _, proc := range procs {
        if err := proc.ForceStop(); err != nil {
            logrus.WithError(err).WithField("worker", proc.Worker()).Warn("Failed to kill worker process")
        }
    }
}

// internal/control/controller.go
//
// Package control is the dispatch surface of the control plane: every
// operation the presentation layer can call, each backed by one or more
// worker invocations. The pattern is uniform: shape a worker invocation,
// check the worker's own success flag, then either normalize the payload
// or surface the worker's error text verbatim.
package control

import (
    "errors"
    "fmt"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/journal"
    "netwarden/internal/monitor"
    "netwarden/internal/worker"
)

// ErrNotFound is returned when a query expected exactly one record and
// matched none.
var ErrNotFound = errors.New("not found")

// UnsupportedRuleTypeError is a client error: the supplied block-rule type
// is not one of domain, category, keyword.
type UnsupportedRuleTypeError struct {
    Type string
}

func (e *UnsupportedRuleTypeError) Error() string {
    return fmt.Sprintf("unknown rule type: %s", e.Type)
}

type Controller struct {
    inv        worker.Invoker
    launcher   worker.Launcher
    supervisor *monitor.Supervisor
    settings   *config.SettingsStore
    journal    *journal.Journal
}

func New(inv worker.Invoker, launcher worker.Launcher, supervisor *monitor.Supervisor,
    settings *config.SettingsStore, jnl *journal.Journal) *Controller {
    return &Controller{
        inv:        inv,
        launcher:   launcher,
        supervisor: supervisor,
        settings:   settings,
        journal:    jnl,
    }
}

func (c *Controller) record(eventType, message string) {
    if c.journal != nil {
        c.journal.Record(eventType, message)
    }
}

// StartMonitoring begins a monitoring session. Fails fast when one is
// already active; a partial startup is rolled back by the supervisor
// before the error surfaces.
func (c *Controller) StartMonitoring() error {
    if err := c.supervisor.StartMonitoring(); err != nil {
        if !errors.Is(err, monitor.ErrAlreadyRunning) {
            c.record(journal.EventStartupFailed, err.Error())
        }
        return err
    }
    c.record(journal.EventMonitoringStarted, "monitoring session started")
    return nil
}

// StopMonitoring ends the session, killing every tracked worker. Always
// succeeds; stopping an idle session is a no-op.
func (c *Controller) StopMonitoring() {
    c.supervisor.StopMonitoring()
    c.record(journal.EventMonitoringStopped, "monitoring session stopped")
}

// Status reports the current monitoring session view.
func (c *Controller) Status() monitor.Status {
    return c.supervisor.Status()
}

// RecentEvents returns the newest control-plane journal entries.
func (c *Controller) RecentEvents(limit int) ([]journal.Event, error) {
    if c.journal == nil {
        return []journal.Event{}, nil
    }
    return c.journal.Recent(limit)
}

// domainError converts a worker-reported failure into a DomainError with
// the worker's own message, falling back to "Unknown error".
func domainError(result worker.Result) error {
    return &worker.DomainError{Message: result.ErrorMessage()}
}

func logOp(op string, fields logrus.Fields) *logrus.Entry {
    return logrus.WithField("op", op).WithFields(fields)
}

// checked runs an invocation result through the uniform success check.
func checked(result worker.Result, err error) (worker.Result, error) {
    if err != nil {
        return nil, err
    }
    if !result.Success() {
        return nil, domainError(result)
    }
    return result, nil
}

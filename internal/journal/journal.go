// internal/journal/journal.go
//
// Package journal is the control plane's own audit trail: an append-only
// log of lifecycle activity (monitoring started/stopped, startup rollback,
// stealth profile changes, certificate server launches). Domain data never
// lands here; that belongs to the storage worker.
package journal

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"
    "go.etcd.io/bbolt"
)

var eventsBucket = []byte("events")

// keyFormat is fixed-width so lexicographic key order matches
// chronological order (RFC3339Nano trims trailing zeros and would not).
const keyFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Event is one recorded control-plane action.
type Event struct {
    ID        string    `json:"id"`
    Timestamp time.Time `json:"timestamp"`
    Type      string    `json:"type"`
    Message   string    `json:"message"`
}

// Event types recorded by the control plane.
const (
    EventMonitoringStarted = "monitoring_started"
    EventMonitoringStopped = "monitoring_stopped"
    EventStartupFailed     = "startup_failed"
    EventProfileChanged    = "profile_changed"
    EventCertServerStarted = "cert_server_started"
    EventSettingsUpdated   = "settings_updated"
)

type Journal struct {
    db   *bbolt.DB
    path string
}

func Open(path string) (*Journal, error) {
    if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
        return nil, fmt.Errorf("failed to create journal directory: %w", err)
    }

    db, err := bbolt.Open(path, 0600, &bbolt.Options{
        Timeout: 1 * time.Second,
    })
    if err != nil {
        return nil, fmt.Errorf("failed to open journal: %w", err)
    }

    err = db.Update(func(tx *bbolt.Tx) error {
        _, err := tx.CreateBucketIfNotExists(eventsBucket)
        return err
    })
    if err != nil {
        db.Close()
        return nil, fmt.Errorf("failed to initialize journal bucket: %w", err)
    }

    return &Journal{db: db, path: path}, nil
}

func (j *Journal) Close() error {
    return j.db.Close()
}

// Record appends one event. Failures are logged, not surfaced: the journal
// must never block a lifecycle operation.
func (j *Journal) Record(eventType, message string) {
    event := Event{
        ID:        uuid.New().String(),
        Timestamp: time.Now().UTC(),
        Type:      eventType,
        Message:   message,
    }

    err := j.db.Update(func(tx *bbolt.Tx) error {
        b := tx.Bucket(eventsBucket)
        data, err := json.Marshal(event)
        if err != nil {
            return err
        }
        // Key by timestamp then ID so iteration order is chronological.
        key := fmt.Sprintf("%s/%s", event.Timestamp.Format(keyFormat), event.ID)
        return b.Put([]byte(key), data)
    })
    if err != nil {
        logrus.WithError(err).WithField("type", eventType).Warn("Failed to record journal event")
    }
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(limit int) ([]Event, error) {
    if limit <= 0 {
        limit = 50
    }

    events := make([]Event, 0, limit)
    err := j.db.View(func(tx *bbolt.Tx) error {
        c := tx.Bucket(eventsBucket).Cursor()
        for k, v := c.Last(); k != nil && len(events) < limit; k, v = c.Prev() {
            var event Event
            if err := json.Unmarshal(v, &event); err != nil {
                return fmt.Errorf("failed to unmarshal event %s: %w", k, err)
            }
            events = append(events, event)
        }
        return nil
    })
    return events, err
}

// Purge drops events older than the retention window and returns the
// number removed.
func (j *Journal) Purge(retention time.Duration) (int, error) {
    cutoff := time.Now().UTC().Add(-retention).Format(keyFormat)

    removed := 0
    err := j.db.Update(func(tx *bbolt.Tx) error {
        c := tx.Bucket(eventsBucket).Cursor()
        for k, _ := c.First(); k != nil; k, _ = c.Next() {
            if string(k) >= cutoff {
                break
            }
            if err := c.Delete(); err != nil {
                return err
            }
            removed++
        }
        return nil
    })
    return removed, err
}

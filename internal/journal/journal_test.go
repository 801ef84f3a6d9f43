// internal/journal/journal_test.go
package journal

import (
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
    t.Helper()
    jnl, err := Open(filepath.Join(t.TempDir(), "journal.db"))
    require.NoError(t, err)
    t.Cleanup(func() { jnl.Close() })
    return jnl
}

func TestRecordAndRecent(t *testing.T) {
    jnl := openTestJournal(t)

    jnl.Record(EventMonitoringStarted, "monitoring session started")
    jnl.Record(EventProfileChanged, "stealth profile changed to smart_tv")
    jnl.Record(EventMonitoringStopped, "monitoring session stopped")

    events, err := jnl.Recent(10)
    require.NoError(t, err)
    require.Len(t, events, 3)

    // Newest first.
    assert.Equal(t, EventMonitoringStopped, events[0].Type)
    assert.Equal(t, EventProfileChanged, events[1].Type)
    assert.Equal(t, EventMonitoringStarted, events[2].Type)

    for _, event := range events {
        assert.NotEmpty(t, event.ID)
        assert.False(t, event.Timestamp.IsZero())
    }
}

func TestRecentLimit(t *testing.T) {
    jnl := openTestJournal(t)

    for i := 0; i < 5; i++ {
        jnl.Record(EventSettingsUpdated, "settings updated")
    }

    events, err := jnl.Recent(2)
    require.NoError(t, err)
    assert.Len(t, events, 2)

    // Non-positive limit falls back to the default.
    events, err = jnl.Recent(0)
    require.NoError(t, err)
    assert.Len(t, events, 5)
}

func TestPurgeDropsOldEvents(t *testing.T) {
    jnl := openTestJournal(t)

    jnl.Record(EventMonitoringStarted, "old event")
    time.Sleep(20 * time.Millisecond)

    removed, err := jnl.Purge(10 * time.Millisecond)
    require.NoError(t, err)
    assert.Equal(t, 1, removed)

    events, err := jnl.Recent(10)
    require.NoError(t, err)
    assert.Empty(t, events)

    // Nothing left to purge.
    removed, err = jnl.Purge(10 * time.Millisecond)
    require.NoError(t, err)
    assert.Zero(t, removed)
}

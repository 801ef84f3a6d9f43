// internal/worker/commands_test.go
package worker

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type recordingInvoker struct {
    worker string
    args   []string
    result Result
    err    error
}

func (r *recordingInvoker) Invoke(ctx context.Context, workerID string, args ...string) (Result, error) {
    r.worker = workerID
    r.args = args
    return r.result, r.err
}

func TestQueryDatabaseShapesArgv(t *testing.T) {
    inv := &recordingInvoker{result: Result{"success": true}}

    _, err := QueryDatabase(context.Background(), inv, "traffic", "--limit", "50", "--device", "dev-1")
    require.NoError(t, err)

    assert.Equal(t, "db_manager", inv.worker)
    assert.Equal(t, []string{"--action", "traffic", "--limit", "50", "--device", "dev-1"}, inv.args)
}

func TestRunBlockingShapesArgv(t *testing.T) {
    inv := &recordingInvoker{result: Result{"success": true}}

    _, err := RunBlocking(context.Background(), inv, "block", "--domain", "ads.example.com")
    require.NoError(t, err)

    assert.Equal(t, "blocker", inv.worker)
    assert.Equal(t, []string{"--action", "block", "--domain", "ads.example.com"}, inv.args)
}

func TestRunAlertsShapesArgv(t *testing.T) {
    inv := &recordingInvoker{result: Result{"success": true}}

    _, err := RunAlerts(context.Background(), inv, "acknowledge", "--id", "a1")
    require.NoError(t, err)

    assert.Equal(t, "alerts", inv.worker)
    assert.Equal(t, []string{"--action", "acknowledge", "--id", "a1"}, inv.args)
}

func TestStealthWrappers(t *testing.T) {
    inv := &recordingInvoker{result: Result{"success": true}}

    _, err := ApplyStealthProfile(context.Background(), inv, "eth0", "hp_printer")
    require.NoError(t, err)
    assert.Equal(t, "stealth", inv.worker)
    assert.Equal(t, []string{"--interface", "eth0", "--profile", "hp_printer"}, inv.args)

    _, err = ListStealthProfiles(context.Background(), inv)
    require.NoError(t, err)
    assert.Equal(t, []string{"--list-profiles"}, inv.args)
}

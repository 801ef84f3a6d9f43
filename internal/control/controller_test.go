// internal/control/controller_test.go
package control

import (
    "context"
    "errors"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "netwarden/internal/config"
    "netwarden/internal/monitor"
    "netwarden/internal/worker"
)

type invocation struct {
    worker string
    args   []string
}

// fakeInvoker replays canned results in call order and records every
// invocation.
type fakeInvoker struct {
    calls   []invocation
    results []worker.Result
    errs    []error
}

func (f *fakeInvoker) Invoke(ctx context.Context, workerID string, args ...string) (worker.Result, error) {
    f.calls = append(f.calls, invocation{workerID, args})
    idx := len(f.calls) - 1
    var result worker.Result
    var err error
    if idx < len(f.results) {
        result = f.results[idx]
    }
    if idx < len(f.errs) {
        err = f.errs[idx]
    }
    return result, err
}

type fakeProcess struct {
    worker string
    killed bool
}

func (p *fakeProcess) Worker() string           { return p.worker }
func (p *fakeProcess) PID() int                 { return 99 }
func (p *fakeProcess) IsAlive() bool            { return !p.killed }
func (p *fakeProcess) ForceStop() error         { p.killed = true; return nil }
func (p *fakeProcess) Send(v interface{}) error { return nil }
func (p *fakeProcess) ReadResponse() (map[string]interface{}, error) {
    return nil, errors.New("not implemented")
}

type fakeLauncher struct {
    launched []string
    err      error
}

func (l *fakeLauncher) LaunchBackground(workerID string, args ...string) (worker.Process, error) {
    l.launched = append(l.launched, workerID)
    if l.err != nil {
        return nil, l.err
    }
    return &fakeProcess{worker: workerID}, nil
}

type harness struct {
    controller *Controller
    invoker    *fakeInvoker
    launcher   *fakeLauncher
    settings   *config.SettingsStore
    supervisor *monitor.Supervisor
}

func newHarness(t *testing.T, results ...worker.Result) *harness {
    t.Helper()

    invoker := &fakeInvoker{results: results}
    launcher := &fakeLauncher{}
    settings := config.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
    supervisor := monitor.NewSupervisor(launcher, settings)

    return &harness{
        controller: New(invoker, launcher, supervisor, settings, nil),
        invoker:    invoker,
        launcher:   launcher,
        settings:   settings,
        supervisor: supervisor,
    }
}

func TestAddBlockRuleDomainArgv(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    require.NoError(t, h.controller.AddBlockRule(context.Background(), "domain", "ads.example.com"))

    require.Len(t, h.invoker.calls, 1)
    assert.Equal(t, "blocker", h.invoker.calls[0].worker)
    assert.Equal(t, []string{"--action", "block", "--domain", "ads.example.com"}, h.invoker.calls[0].args)
}

func TestAddBlockRuleSurfacesWorkerErrorVerbatim(t *testing.T) {
    h := newHarness(t, worker.Result{"success": false, "error": "invalid domain"})

    err := h.controller.AddBlockRule(context.Background(), "domain", "!!!")
    require.Error(t, err)
    assert.Equal(t, "invalid domain", err.Error())

    var domainErr *worker.DomainError
    assert.ErrorAs(t, err, &domainErr)
}

func TestAddBlockRuleUnknownTypeDoesNotInvoke(t *testing.T) {
    h := newHarness(t)

    err := h.controller.AddBlockRule(context.Background(), "regex", "x")
    var ruleErr *UnsupportedRuleTypeError
    require.ErrorAs(t, err, &ruleErr)
    assert.Equal(t, "regex", ruleErr.Type)
    assert.Empty(t, h.invoker.calls)
}

func TestRemoveBlockRuleKeywordArgv(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    require.NoError(t, h.controller.RemoveBlockRule(context.Background(), "keyword", "casino"))
    assert.Equal(t, []string{"--action", "remove-keyword", "--keyword", "casino"}, h.invoker.calls[0].args)
}

func TestToggleCategory(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true}, worker.Result{"success": true})

    require.NoError(t, h.controller.ToggleCategory(context.Background(), "gambling", true))
    assert.Equal(t, []string{"--action", "block-category", "--category", "gambling"}, h.invoker.calls[0].args)

    require.NoError(t, h.controller.ToggleCategory(context.Background(), "gambling", false))
    assert.Equal(t, []string{"--action", "unblock-category", "--category", "gambling"}, h.invoker.calls[1].args)
}

func TestListDevicesNormalizes(t *testing.T) {
    h := newHarness(t, worker.Result{
        "success": true,
        "devices": []interface{}{
            map[string]interface{}{"id": "d1", "mac": "aa:bb:cc:dd:ee:ff", "ip": "192.168.1.5"},
            map[string]interface{}{"mac": "no-id", "ip": "192.168.1.6"},
        },
    })

    devices, err := h.controller.ListDevices(context.Background())
    require.NoError(t, err)
    require.Len(t, devices, 1)
    assert.Equal(t, "d1", devices[0].ID)

    assert.Equal(t, "db_manager", h.invoker.calls[0].worker)
    assert.Equal(t, []string{"--action", "devices"}, h.invoker.calls[0].args)
}

func TestSetDeviceMonitoringArgv(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    require.NoError(t, h.controller.SetDeviceMonitoring(context.Background(), "dev-1", false))
    assert.Equal(t, []string{"--action", "update-device", "--device", "dev-1", "--monitored", "0"}, h.invoker.calls[0].args)
}

func TestListTrafficAppliesOffsetLocally(t *testing.T) {
    entries := []interface{}{
        map[string]interface{}{"id": "t1", "timestamp": "2026-08-30T10:00:00Z"},
        map[string]interface{}{"id": "t2", "timestamp": "2026-08-30T10:00:01Z"},
        map[string]interface{}{"id": "t3", "timestamp": "2026-08-30T10:00:02Z"},
    }
    h := newHarness(t, worker.Result{"success": true, "traffic": entries})

    got, err := h.controller.ListTraffic(context.Background(), 10, 1, "")
    require.NoError(t, err)
    require.Len(t, got, 2)
    assert.Equal(t, "t2", got[0].ID)

    assert.Equal(t, []string{"--action", "traffic", "--limit", "10"}, h.invoker.calls[0].args)
}

func TestListTrafficDeviceFilter(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true, "traffic": []interface{}{}})

    _, err := h.controller.ListTraffic(context.Background(), 0, 0, "dev-1")
    require.NoError(t, err)
    assert.Equal(t, []string{"--action", "traffic", "--limit", "100", "--device", "dev-1"}, h.invoker.calls[0].args)
}

func TestTrafficDetailsNotFound(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true, "traffic": []interface{}{}})

    _, err := h.controller.TrafficDetails(context.Background(), "missing")
    require.ErrorIs(t, err, ErrNotFound)
}

func TestListAlertsUnreadFilter(t *testing.T) {
    h := newHarness(t, worker.Result{
        "success": true,
        "alerts": []interface{}{
            map[string]interface{}{"id": "a1", "timestamp": "2026-08-30T10:00:00Z", "acknowledged": true},
            map[string]interface{}{"id": "a2", "timestamp": "2026-08-30T10:00:01Z", "acknowledged": false},
        },
    })

    alerts, err := h.controller.ListAlerts(context.Background(), true)
    require.NoError(t, err)
    require.Len(t, alerts, 1)
    assert.Equal(t, "a2", alerts[0].ID)
}

func TestStatsSumsBandwidthCounters(t *testing.T) {
    h := newHarness(t, worker.Result{
        "success": true,
        "stats":   map[string]interface{}{"bytes_in": float64(100), "bytes_out": float64(50)},
    })

    stats, err := h.controller.Stats(context.Background())
    require.NoError(t, err)
    assert.Equal(t, int64(150), stats.TotalBandwidth)
}

func TestStatsWorkerFailureYieldsEmptyStats(t *testing.T) {
    h := newHarness(t, worker.Result{"success": false, "error": "no database"})

    stats, err := h.controller.Stats(context.Background())
    require.NoError(t, err)
    assert.Equal(t, int64(0), stats.TotalRequests)
    assert.NotNil(t, stats.TopDomains)
}

func TestChangeStealthProfilePersistsSettings(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    require.NoError(t, h.controller.ChangeStealthProfile(context.Background(), "smart_tv"))

    assert.Equal(t, "stealth", h.invoker.calls[0].worker)
    assert.Equal(t, []string{"--interface", config.DefaultInterface, "--profile", "smart_tv"}, h.invoker.calls[0].args)

    settings, err := h.settings.Load()
    require.NoError(t, err)
    assert.Equal(t, "smart_tv", settings.DeviceProfile)
    assert.Equal(t, "smart_tv", h.supervisor.Status().CurrentProfile)
}

func TestChangeStealthProfilePrefersMessageField(t *testing.T) {
    h := newHarness(t, worker.Result{"success": false, "message": "interface busy", "error": "generic"})

    err := h.controller.ChangeStealthProfile(context.Background(), "smart_tv")
    require.Error(t, err)
    assert.Equal(t, "interface busy", err.Error())
}

func TestGenerateCertificateMessage(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true, "cert_path": "certs/hp.crt"})

    msg, err := h.controller.GenerateCertificate(context.Background(), "hp_printer")
    require.NoError(t, err)
    assert.Equal(t, "Certificate generated: certs/hp.crt", msg)

    assert.Equal(t, "cert_generator", h.invoker.calls[0].worker)
    assert.Equal(t, []string{"--action", "generate", "--profile", "hp_printer"}, h.invoker.calls[0].args)
}

func TestGenerateCertificateDefaultPath(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    msg, err := h.controller.GenerateCertificate(context.Background(), "hp_printer")
    require.NoError(t, err)
    assert.Equal(t, "Certificate generated: certs/ca.crt", msg)
}

func TestStartCertServerTracksProcess(t *testing.T) {
    h := newHarness(t)

    msg, err := h.controller.StartCertServer()
    require.NoError(t, err)
    assert.Contains(t, msg, "8888")
    assert.Equal(t, []string{"cert_server"}, h.launcher.launched)
    assert.Equal(t, 1, h.supervisor.ProcessCount())
}

func TestCertURL(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true, "ip": "192.168.1.77"})

    url, err := h.controller.CertURL(context.Background())
    require.NoError(t, err)
    assert.Equal(t, "http://192.168.1.77:8888", url)
}

func TestCertURLDefaultIP(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    url, err := h.controller.CertURL(context.Background())
    require.NoError(t, err)
    assert.Equal(t, "http://192.168.1.1:8888", url)
}

func TestExportDataArgv(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true})

    require.NoError(t, h.controller.ExportData(context.Background(), "csv", "/tmp/out.csv"))
    assert.Equal(t, []string{"--action", "export", "--format", "csv", "--output", "/tmp/out.csv"}, h.invoker.calls[0].args)
}

func TestCleanupDatabasePassThrough(t *testing.T) {
    h := newHarness(t, worker.Result{"success": true, "removed": float64(12)})

    result, err := h.controller.CleanupDatabase(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, float64(12), result["removed"])
    assert.Equal(t, []string{"--action", "cleanup", "--days", "7"}, h.invoker.calls[0].args)
}

func TestStartMonitoringLifecycle(t *testing.T) {
    h := newHarness(t)

    require.NoError(t, h.controller.StartMonitoring())
    assert.True(t, h.controller.Status().IsRunning)

    err := h.controller.StartMonitoring()
    require.ErrorIs(t, err, monitor.ErrAlreadyRunning)

    h.controller.StopMonitoring()
    assert.False(t, h.controller.Status().IsRunning)

    // Stop is idempotent through the controller too.
    h.controller.StopMonitoring()
}

func TestInvocationErrorsPropagate(t *testing.T) {
    h := newHarness(t)
    h.invoker.errs = []error{&worker.ExecutionError{Worker: "db_manager", ExitCode: 1, Stderr: "boom"}}

    _, err := h.controller.ListDevices(context.Background())
    var execErr *worker.ExecutionError
    require.ErrorAs(t, err, &execErr)
}

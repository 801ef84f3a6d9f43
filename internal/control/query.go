// internal/control/query.go
package control

import (
    "context"
    "strconv"

    "github.com/sirupsen/logrus"
    "netwarden/internal/normalize"
    "netwarden/internal/worker"
)

// ListDevices returns every device known to the storage worker.
func (c *Controller) ListDevices(ctx context.Context) ([]normalize.Device, error) {
    result, err := checked(worker.QueryDatabase(ctx, c.inv, "devices"))
    if err != nil {
        return nil, err
    }
    return normalize.Devices(result), nil
}

// ScanDevices triggers an active network scan and returns what it found.
func (c *Controller) ScanDevices(ctx context.Context) ([]normalize.Device, error) {
    result, err := checked(c.inv.Invoke(ctx, "device_scanner", "--scan"))
    if err != nil {
        return nil, err
    }
    return normalize.Devices(result), nil
}

// SetDeviceMonitoring toggles interception for one device.
func (c *Controller) SetDeviceMonitoring(ctx context.Context, deviceID string, enabled bool) error {
    logOp("set_device_monitoring", logrus.Fields{"device": deviceID, "enabled": enabled}).Info("Updating device monitoring")

    monitored := "0"
    if enabled {
        monitored = "1"
    }
    _, err := checked(worker.QueryDatabase(ctx, c.inv, "update-device",
        "--device", deviceID, "--monitored", monitored))
    return err
}

// ListTraffic returns captured traffic entries, newest first per the
// storage worker's ordering. The offset is applied to the normalized
// result set; the storage worker only understands a limit.
func (c *Controller) ListTraffic(ctx context.Context, limit, offset int, deviceID string) ([]normalize.TrafficEntry, error) {
    if limit <= 0 {
        limit = 100
    }
    kv := []string{"--limit", strconv.Itoa(limit)}
    if deviceID != "" {
        kv = append(kv, "--device", deviceID)
    }

    result, err := checked(worker.QueryDatabase(ctx, c.inv, "traffic", kv...))
    if err != nil {
        return nil, err
    }

    entries := normalize.Traffic(result)
    if offset > 0 {
        if offset >= len(entries) {
            return []normalize.TrafficEntry{}, nil
        }
        entries = entries[offset:]
    }
    return entries, nil
}

// SearchTraffic runs a free-text search over captured traffic.
func (c *Controller) SearchTraffic(ctx context.Context, query string) ([]normalize.TrafficEntry, error) {
    logOp("search_traffic", logrus.Fields{"query": query}).Info("Searching traffic")

    result, err := checked(worker.QueryDatabase(ctx, c.inv, "search", "--query", query))
    if err != nil {
        return nil, err
    }
    return normalize.SearchResults(result), nil
}

// TrafficDetails fetches one traffic entry by ID, returning ErrNotFound
// when the storage worker has no matching record.
func (c *Controller) TrafficDetails(ctx context.Context, entryID string) (normalize.TrafficEntry, error) {
    result, err := checked(worker.QueryDatabase(ctx, c.inv, "get-traffic", "--id", entryID))
    if err != nil {
        return normalize.TrafficEntry{}, err
    }

    entries := normalize.Traffic(result)
    if len(entries) == 0 {
        return normalize.TrafficEntry{}, ErrNotFound
    }
    return entries[0], nil
}

// ListAlerts returns alerts from the alert worker, optionally filtered to
// unread ones.
func (c *Controller) ListAlerts(ctx context.Context, unreadOnly bool) ([]normalize.Alert, error) {
    result, err := checked(worker.RunAlerts(ctx, c.inv, "list"))
    if err != nil {
        return nil, err
    }

    alerts := normalize.Alerts(result)
    if unreadOnly {
        unread := alerts[:0]
        for _, alert := range alerts {
            if !alert.IsRead {
                unread = append(unread, alert)
            }
        }
        alerts = unread
    }
    return alerts, nil
}

// MarkAlertRead acknowledges one alert.
func (c *Controller) MarkAlertRead(ctx context.Context, alertID string) error {
    _, err := checked(worker.RunAlerts(ctx, c.inv, "acknowledge", "--id", alertID))
    return err
}

// ResolveAlert resolves one alert. The alert worker tracks a single
// acknowledged flag, so this is the same upstream action as MarkAlertRead.
func (c *Controller) ResolveAlert(ctx context.Context, alertID string) error {
    _, err := checked(worker.RunAlerts(ctx, c.inv, "acknowledge", "--id", alertID))
    return err
}

// DeleteAlert removes one alert.
func (c *Controller) DeleteAlert(ctx context.Context, alertID string) error {
    _, err := checked(worker.RunAlerts(ctx, c.inv, "delete", "--id", alertID))
    return err
}

// MarkAllAlertsRead acknowledges every alert.
func (c *Controller) MarkAllAlertsRead(ctx context.Context) error {
    _, err := checked(worker.RunAlerts(ctx, c.inv, "acknowledge-all"))
    return err
}

// Stats returns the dashboard aggregates. A worker-reported failure yields
// empty stats rather than an error: the storage worker's database may not
// exist before the first monitoring session.
func (c *Controller) Stats(ctx context.Context) (normalize.DashboardStats, error) {
    result, err := worker.QueryDatabase(ctx, c.inv, "stats")
    if err != nil {
        return normalize.DashboardStats{}, err
    }
    if !result.Success() {
        return normalize.EmptyStats(), nil
    }
    return normalize.Stats(result), nil
}

// CleanupDatabase asks the storage worker to drop records older than the
// given number of days; the worker's summary is passed through raw.
func (c *Controller) CleanupDatabase(ctx context.Context, days int) (worker.Result, error) {
    return worker.QueryDatabase(ctx, c.inv, "cleanup", "--days", strconv.Itoa(days))
}

// ExportData asks the storage worker to export captured data.
func (c *Controller) ExportData(ctx context.Context, format, path string) error {
    logOp("export_data", logrus.Fields{"format": format, "path": path}).Info("Exporting data")

    _, err := checked(worker.QueryDatabase(ctx, c.inv, "export",
        "--format", format, "--output", path))
    return err
}

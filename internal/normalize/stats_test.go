// internal/normalize/stats_test.go
package normalize

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestStatsNestedObject(t *testing.T) {
    result := decode(t, `{"success": true, "stats": {
        "device_count": 12,
        "online_devices": 5,
        "traffic_count": 10000,
        "blocked_count": 321,
        "alert_count": 9,
        "unresolved_alerts": 4,
        "bytes_in": 1000,
        "bytes_out": 500,
        "top_domains": {"example.com": 40, "ads.example.net": 12}
    }}`)

    stats := Stats(result)
    assert.Equal(t, int64(12), stats.TotalDevices)
    assert.Equal(t, int64(5), stats.OnlineDevices)
    assert.Equal(t, int64(10000), stats.TotalRequests)
    assert.Equal(t, int64(321), stats.BlockedRequests)
    assert.Equal(t, int64(9), stats.TotalAlerts)
    assert.Equal(t, int64(4), stats.UnresolvedAlerts)
    assert.Equal(t, int64(1500), stats.TotalBandwidth)
    assert.Empty(t, stats.TrafficByHour)

    require.Len(t, stats.TopDomains, 2)
    counts := map[string]int64{}
    for _, d := range stats.TopDomains {
        counts[d.Domain] = d.Count
    }
    assert.Equal(t, int64(40), counts["example.com"])
    assert.Equal(t, int64(12), counts["ads.example.net"])
}

func TestStatsTopLevelCounters(t *testing.T) {
    result := decode(t, `{"success": true, "device_count": 3, "bytes_in": 10}`)

    stats := Stats(result)
    assert.Equal(t, int64(3), stats.TotalDevices)
    assert.Equal(t, int64(10), stats.TotalBandwidth)
}

func TestStatsMissingEverything(t *testing.T) {
    stats := Stats(decode(t, `{"success": true}`))
    assert.Equal(t, int64(0), stats.TotalDevices)
    assert.Equal(t, int64(0), stats.TotalBandwidth)
    assert.NotNil(t, stats.TopDomains)
    assert.Empty(t, stats.TopDomains)
}

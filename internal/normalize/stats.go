// internal/normalize/stats.go
package normalize

// DashboardStats is the aggregate view computed by the storage worker.
type DashboardStats struct {
    TotalDevices     int64           `json:"total_devices"`
    OnlineDevices    int64           `json:"online_devices"`
    TotalRequests    int64           `json:"total_requests"`
    BlockedRequests  int64           `json:"blocked_requests"`
    TotalAlerts      int64           `json:"total_alerts"`
    UnresolvedAlerts int64           `json:"unresolved_alerts"`
    TotalBandwidth   int64           `json:"total_bandwidth"`
    TopDomains       []TopDomain     `json:"top_domains"`
    TrafficByHour    []HourlyTraffic `json:"traffic_by_hour"`
}

type TopDomain struct {
    Domain string `json:"domain"`
    Count  int64  `json:"count"`
}

// HourlyTraffic is reserved: the storage worker does not report an hourly
// histogram yet, so TrafficByHour is always empty.
type HourlyTraffic struct {
    Hour     int64 `json:"hour"`
    Requests int64 `json:"requests"`
}

// Stats normalizes the storage worker's stats payload. The worker may nest
// the counters under a "stats" object or report them at the top level.
// Total bandwidth is the sum of the separately reported inbound and
// outbound byte counters.
func Stats(result map[string]interface{}) DashboardStats {
    stats := result
    if nested, ok := result["stats"].(map[string]interface{}); ok {
        stats = nested
    }

    return DashboardStats{
        TotalDevices:     intOr(stats, 0, "device_count"),
        OnlineDevices:    intOr(stats, 0, "online_devices"),
        TotalRequests:    intOr(stats, 0, "traffic_count"),
        BlockedRequests:  intOr(stats, 0, "blocked_count"),
        TotalAlerts:      intOr(stats, 0, "alert_count"),
        UnresolvedAlerts: intOr(stats, 0, "unresolved_alerts"),
        TotalBandwidth:   intOr(stats, 0, "bytes_in") + intOr(stats, 0, "bytes_out"),
        TopDomains:       topDomains(stats),
        TrafficByHour:    []HourlyTraffic{},
    }
}

// EmptyStats is returned when the storage worker cannot answer, typically
// before its database exists.
func EmptyStats() DashboardStats {
    return DashboardStats{
        TopDomains:    []TopDomain{},
        TrafficByHour: []HourlyTraffic{},
    }
}

func topDomains(stats map[string]interface{}) []TopDomain {
    mapping, ok := stats["top_domains"].(map[string]interface{})
    if !ok {
        return []TopDomain{}
    }
    domains := make([]TopDomain, 0, len(mapping))
    for domain, count := range mapping {
        n, _ := count.(float64)
        domains = append(domains, TopDomain{Domain: domain, Count: int64(n)})
    }
    return domains
}

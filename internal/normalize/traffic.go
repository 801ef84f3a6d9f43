// internal/normalize/traffic.go
package normalize

// TrafficEntry is one intercepted HTTP/HTTPS request.
type TrafficEntry struct {
    ID           string `json:"id"`
    Timestamp    string `json:"timestamp"`
    DeviceID     string `json:"device_id,omitempty"`
    DeviceIP     string `json:"device_ip"`
    Method       string `json:"method"`
    URL          string `json:"url"`
    Host         string `json:"host"`
    Path         string `json:"path,omitempty"`
    StatusCode   int64  `json:"status_code,omitempty"`
    ContentType  string `json:"content_type,omitempty"`
    RequestSize  int64  `json:"request_size"`
    ResponseSize int64  `json:"response_size"`
    Duration     int64  `json:"duration"`
    IsBlocked    bool   `json:"is_blocked"`
    HasAlert     bool   `json:"has_alert"`
    Category     string `json:"category,omitempty"`
}

// Traffic normalizes the "traffic" array of a worker result.
func Traffic(result map[string]interface{}) []TrafficEntry {
    return trafficFrom(result, "traffic")
}

// SearchResults normalizes the "results" array returned by the storage
// worker's search action; entries share the traffic schema.
func SearchResults(result map[string]interface{}) []TrafficEntry {
    return trafficFrom(result, "results")
}

func trafficFrom(result map[string]interface{}, key string) []TrafficEntry {
    raw := objects(result, key)
    entries := make([]TrafficEntry, 0, len(raw))
    for _, obj := range raw {
        if entry, ok := trafficFromMap(obj); ok {
            entries = append(entries, entry)
        }
    }
    return entries
}

func trafficFromMap(m map[string]interface{}) (TrafficEntry, bool) {
    id, ok := stringField(m, "id")
    if !ok {
        return TrafficEntry{}, false
    }
    timestamp, ok := stringField(m, "timestamp")
    if !ok {
        return TrafficEntry{}, false
    }

    // has_alert derives from the worker-supplied alert list being non-empty.
    alerts, _ := m["alerts"].([]interface{})

    return TrafficEntry{
        ID:           id,
        Timestamp:    timestamp,
        DeviceID:     stringOr(m, "", "device_id"),
        DeviceIP:     stringOr(m, "", "device_ip"),
        Method:       stringOr(m, "GET", "method"),
        URL:          stringOr(m, "", "url"),
        Host:         stringOr(m, "", "host"),
        Path:         stringOr(m, "", "path"),
        StatusCode:   intOr(m, 0, "status_code"),
        ContentType:  stringOr(m, "", "content_type", "response_body_type"),
        RequestSize:  intOr(m, 0, "request_size"),
        ResponseSize: intOr(m, 0, "response_size"),
        Duration:     intOr(m, 0, "duration_ms", "duration"),
        IsBlocked:    boolOr(m, false, "blocked"),
        HasAlert:     len(alerts) > 0,
        Category:     stringOr(m, "", "category"),
    }, true
}

// internal/normalize/alert.go
package normalize

// Alert is a keyword/content alert raised by the alert worker.
//
// IsRead and IsResolved both derive from the worker's single "acknowledged"
// flag; the upstream schema does not track them independently. If the
// worker ever splits them, this is the place to pick up the new fields.
type Alert struct {
    ID              string   `json:"id"`
    Timestamp       string   `json:"timestamp"`
    DeviceID        string   `json:"device_id,omitempty"`
    Severity        string   `json:"severity"`
    Category        string   `json:"category"`
    Title           string   `json:"title"`
    Description     string   `json:"description"`
    URL             string   `json:"url,omitempty"`
    MatchedKeywords []string `json:"matched_keywords,omitempty"`
    IsRead          bool     `json:"is_read"`
    IsResolved      bool     `json:"is_resolved"`
}

// Alerts normalizes the "alerts" array of a worker result.
func Alerts(result map[string]interface{}) []Alert {
    raw := objects(result, "alerts")
    alerts := make([]Alert, 0, len(raw))
    for _, obj := range raw {
        if alert, ok := alertFromMap(obj); ok {
            alerts = append(alerts, alert)
        }
    }
    return alerts
}

func alertFromMap(m map[string]interface{}) (Alert, bool) {
    id, ok := stringField(m, "id")
    if !ok {
        return Alert{}, false
    }
    timestamp, ok := stringField(m, "timestamp")
    if !ok {
        return Alert{}, false
    }

    acknowledged := boolOr(m, false, "acknowledged")

    return Alert{
        ID:              id,
        Timestamp:       timestamp,
        DeviceID:        stringOr(m, "", "device_id", "source_device"),
        Severity:        stringOr(m, "", "severity"),
        Category:        stringOr(m, "", "category"),
        Title:           stringOr(m, "", "title"),
        Description:     stringOr(m, "", "description"),
        URL:             stringOr(m, "", "url"),
        MatchedKeywords: matchedKeywords(m),
        IsRead:          acknowledged,
        IsResolved:      acknowledged,
    }, true
}

// matchedKeywords prefers the modern list field, falling back to the legacy
// single-keyword scalar.
func matchedKeywords(m map[string]interface{}) []string {
    if raw, ok := m["matched_keywords"].([]interface{}); ok {
        keywords := make([]string, 0, len(raw))
        for _, item := range raw {
            if s, ok := item.(string); ok {
                keywords = append(keywords, s)
            }
        }
        return keywords
    }
    if s, ok := m["matched_keyword"].(string); ok {
        return []string{s}
    }
    return nil
}

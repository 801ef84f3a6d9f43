// internal/normalize/device.go
package normalize

// Device is a LAN device as reported by the scanner and storage workers.
type Device struct {
    ID              string `json:"id"`
    MAC             string `json:"mac"`
    IP              string `json:"ip"`
    Hostname        string `json:"hostname,omitempty"`
    Vendor          string `json:"vendor,omitempty"`
    DeviceType      string `json:"device_type"`
    FirstSeen       string `json:"first_seen"`
    LastSeen        string `json:"last_seen"`
    IsOnline        bool   `json:"is_online"`
    IsMonitored     bool   `json:"is_monitored"`
    HasCertificate  bool   `json:"has_certificate"`
    TotalBytes      int64  `json:"total_bytes"`
    BlockedRequests int64  `json:"blocked_requests"`
    Alerts          int64  `json:"alerts"`
}

// Devices normalizes the "devices" array of a worker result. Records
// missing any of the required id/mac/ip fields are dropped.
func Devices(result map[string]interface{}) []Device {
    raw := objects(result, "devices")
    devices := make([]Device, 0, len(raw))
    for _, obj := range raw {
        if device, ok := deviceFromMap(obj); ok {
            devices = append(devices, device)
        }
    }
    return devices
}

func deviceFromMap(m map[string]interface{}) (Device, bool) {
    id, ok := stringField(m, "id")
    if !ok {
        return Device{}, false
    }
    mac, ok := stringField(m, "mac_address", "mac")
    if !ok {
        return Device{}, false
    }
    ip, ok := stringField(m, "ip_address", "ip")
    if !ok {
        return Device{}, false
    }

    return Device{
        ID:              id,
        MAC:             mac,
        IP:              ip,
        Hostname:        stringOr(m, "", "hostname"),
        Vendor:          stringOr(m, "", "manufacturer", "vendor"),
        DeviceType:      stringOr(m, "unknown", "device_type"),
        FirstSeen:       stringOr(m, "", "first_seen"),
        LastSeen:        stringOr(m, "", "last_seen"),
        IsOnline:        boolOr(m, false, "is_online"),
        IsMonitored:     boolOr(m, true, "is_monitored"),
        HasCertificate:  boolOr(m, false, "has_certificate"),
        TotalBytes:      intOr(m, 0, "total_bytes"),
        BlockedRequests: intOr(m, 0, "blocked_requests"),
        Alerts:          intOr(m, 0, "alerts"),
    }, true
}

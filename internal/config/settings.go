// internal/config/settings.go
package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"

    "github.com/sirupsen/logrus"
)

// Settings is the user-facing configuration persisted as a single JSON
// object. It is shared with the worker scripts, which read the same file,
// so the field names are part of the worker contract.
type Settings struct {
    Theme                string `json:"theme"`
    StealthEnabled       bool   `json:"stealth_enabled"`
    DeviceProfile        string `json:"device_profile"`
    BlockingEnabled      bool   `json:"blocking_enabled"`
    NotificationsEnabled bool   `json:"notifications_enabled"`
    NetworkInterface     string `json:"network_interface,omitempty"`
}

// DefaultInterface is used when no network interface is configured.
const DefaultInterface = "Wi-Fi"

var (
    ErrSettingsRead  = errors.New("settings file unreadable")
    ErrSettingsParse = errors.New("settings file malformed")
    ErrSettingsWrite = errors.New("settings file not writable")
)

// DefaultSettings returns the built-in settings used when no file has been
// persisted yet.
func DefaultSettings() Settings {
    return Settings{
        Theme:                "dark",
        StealthEnabled:       true,
        DeviceProfile:        "hp_printer",
        BlockingEnabled:      true,
        NotificationsEnabled: true,
    }
}

// Interface returns the configured capture interface, falling back to the
// platform default when none is set.
func (s Settings) Interface() string {
    if s.NetworkInterface != "" {
        return s.NetworkInterface
    }
    return DefaultInterface
}

// SettingsStore reads and writes the settings file. File access is not
// synchronized: settings changes are infrequent and callers must not assume
// atomic read-modify-write across concurrent writers.
type SettingsStore struct {
    path string
}

func NewSettingsStore(path string) *SettingsStore {
    return &SettingsStore{path: path}
}

// Load returns the persisted settings, or the built-in defaults when the
// file does not exist. A missing file is not an error and does not create
// the file.
func (s *SettingsStore) Load() (Settings, error) {
    data, err := os.ReadFile(s.path)
    if err != nil {
        if os.IsNotExist(err) {
            return DefaultSettings(), nil
        }
        return Settings{}, fmt.Errorf("%w: %v", ErrSettingsRead, err)
    }

    var settings Settings
    if err := json.Unmarshal(data, &settings); err != nil {
        return Settings{}, fmt.Errorf("%w: %v", ErrSettingsParse, err)
    }

    return settings, nil
}

// Save serializes the settings and overwrites the file, creating the
// containing directory if needed.
func (s *SettingsStore) Save(settings Settings) error {
    if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
        return fmt.Errorf("%w: %v", ErrSettingsWrite, err)
    }

    data, err := json.MarshalIndent(settings, "", "  ")
    if err != nil {
        return fmt.Errorf("%w: %v", ErrSettingsWrite, err)
    }

    if err := os.WriteFile(s.path, data, 0644); err != nil {
        return fmt.Errorf("%w: %v", ErrSettingsWrite, err)
    }

    logrus.WithField("path", s.path).Debug("Settings saved")
    return nil
}

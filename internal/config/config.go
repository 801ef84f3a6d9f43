// internal/config/config.go
package config

import (
    "fmt"
    "os"
    "path/filepath"
    "time"

    "gopkg.in/yaml.v3"
)

type Config struct {
    Server     ServerConfig     `yaml:"server"`
    Workers    WorkersConfig    `yaml:"workers"`
    Journal    JournalConfig    `yaml:"journal"`
    Prometheus PrometheusConfig `yaml:"prometheus"`
    Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
    Port         string        `yaml:"port"`
    ReadTimeout  time.Duration `yaml:"read_timeout"`
    WriteTimeout time.Duration `yaml:"write_timeout"`
}

// WorkersConfig locates the external worker scripts. Interpreter is the
// python binary used to run them, Root is the directory the scripts live
// under and the working directory they run with. Scripts maps a logical
// worker ID to a script path relative to Root; unset entries fall back to
// the built-in registry.
type WorkersConfig struct {
    Interpreter string            `yaml:"interpreter"`
    Root        string            `yaml:"root"`
    Scripts     map[string]string `yaml:"scripts"`
}

type JournalConfig struct {
    Path      string        `yaml:"path"`
    Retention time.Duration `yaml:"retention"`
}

type PrometheusConfig struct {
    Enabled     bool   `yaml:"enabled"`
    MetricsPath string `yaml:"metrics_path"`
}

type LoggingConfig struct {
    Level  string `yaml:"level"`
    Format string `yaml:"format"`
}

// Built-in worker registry. Keys are the logical worker IDs used throughout
// the control plane; values are script paths relative to Workers.Root.
var defaultScripts = map[string]string{
    "arp_gateway":    "python/arp/arp_gateway.py",
    "device_scanner": "python/arp/device_scanner.py",
    "https_proxy":    "python/https/transparent_proxy.py",
    "dns_capture":    "python/dns/dns_capture.py",
    "db_manager":     "python/database/db_manager.py",
    "blocker":        "python/blocking/blocker.py",
    "stealth":        "python/stealth/mac_changer.py",
    "alerts":         "python/alerts/notifier.py",
    "cert_generator": "python/https/cert_generator.py",
    "cert_server":    "cert-installer/server.py",
    "netutils":       "python/utils/network_utils.py",
}

func Load(filename string) (*Config, error) {
    data, err := os.ReadFile(filename)
    if err != nil {
        return nil, fmt.Errorf("failed to read config file: %w", err)
    }

    var config Config
    if err := yaml.Unmarshal(data, &config); err != nil {
        return nil, fmt.Errorf("failed to parse YAML: %w", err)
    }

    setDefaults(&config)

    if err := validate(&config); err != nil {
        return nil, fmt.Errorf("invalid configuration: %w", err)
    }

    return &config, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty
// config with defaults applied.
func LoadOrDefault(filename string) (*Config, error) {
    if _, err := os.Stat(filename); os.IsNotExist(err) {
        config := &Config{}
        setDefaults(config)
        return config, nil
    }
    return Load(filename)
}

func setDefaults(config *Config) {
    if config.Server.Port == "" {
        config.Server.Port = ":8090"
    }
    if config.Server.ReadTimeout == 0 {
        config.Server.ReadTimeout = 30 * time.Second
    }
    if config.Server.WriteTimeout == 0 {
        config.Server.WriteTimeout = 30 * time.Second
    }
    if config.Workers.Interpreter == "" {
        config.Workers.Interpreter = "python3"
    }
    if config.Workers.Root == "" {
        config.Workers.Root = "."
    }
    if config.Journal.Path == "" {
        config.Journal.Path = "data/journal.db"
    }
    if config.Journal.Retention == 0 {
        config.Journal.Retention = 30 * 24 * time.Hour
    }
    if config.Prometheus.MetricsPath == "" {
        config.Prometheus.MetricsPath = "/metrics"
    }
    if config.Logging.Level == "" {
        config.Logging.Level = "info"
    }
}

func validate(config *Config) error {
    for id, script := range config.Workers.Scripts {
        if _, known := defaultScripts[id]; !known {
            return fmt.Errorf("unknown worker ID in scripts: %s", id)
        }
        if script == "" {
            return fmt.Errorf("empty script path for worker %s", id)
        }
    }
    return nil
}

// WorkerScript resolves a logical worker ID to the script path relative to
// Workers.Root, honoring overrides from the config file.
func (c *Config) WorkerScript(id string) (string, bool) {
    if script, ok := c.Workers.Scripts[id]; ok {
        return script, true
    }
    script, ok := defaultScripts[id]
    return script, ok
}

// WorkerScriptPath resolves a worker ID to an absolute script path.
func (c *Config) WorkerScriptPath(id string) (string, bool) {
    script, ok := c.WorkerScript(id)
    if !ok {
        return "", false
    }
    if filepath.IsAbs(script) {
        return script, true
    }
    return filepath.Join(c.Workers.Root, script), true
}

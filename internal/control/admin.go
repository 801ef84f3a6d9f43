// internal/control/admin.go
package control

import (
    "context"
    "fmt"
    "os"
    "os/exec"
    "runtime"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/journal"
    "netwarden/internal/worker"
)

// GetSettings returns the persisted user settings, or the built-in
// defaults when none exist yet.
func (c *Controller) GetSettings() (config.Settings, error) {
    return c.settings.Load()
}

// UpdateSettings persists new user settings.
func (c *Controller) UpdateSettings(settings config.Settings) error {
    if err := c.settings.Save(settings); err != nil {
        return err
    }
    c.record(journal.EventSettingsUpdated, "settings updated")
    return nil
}

// ChangeStealthProfile applies a device profile on the configured
// interface, then records it as the active profile and persists it in the
// settings.
func (c *Controller) ChangeStealthProfile(ctx context.Context, profileID string) error {
    settings, err := c.settings.Load()
    if err != nil {
        return err
    }

    result, err := worker.ApplyStealthProfile(ctx, c.inv, settings.Interface(), profileID)
    if err != nil {
        return err
    }
    if !result.Success() {
        // The stealth worker reports failures in "message" rather than
        // "error".
        msg, ok := result.String("message", "error")
        if !ok {
            msg = "Unknown error"
        }
        return &worker.DomainError{Message: msg}
    }

    c.supervisor.SetProfile(profileID)

    settings, err = c.settings.Load()
    if err != nil {
        return err
    }
    settings.DeviceProfile = profileID
    if err := c.settings.Save(settings); err != nil {
        return err
    }

    c.record(journal.EventProfileChanged, fmt.Sprintf("stealth profile changed to %s", profileID))
    logOp("change_stealth_profile", logrus.Fields{"profile": profileID}).Info("Stealth profile changed")
    return nil
}

// ListStealthProfiles returns the stealth worker's profile catalog raw.
func (c *Controller) ListStealthProfiles(ctx context.Context) (worker.Result, error) {
    return worker.ListStealthProfiles(ctx, c.inv)
}

// GenerateCertificate builds a CA certificate styled after the given
// device profile and returns a descriptive confirmation.
func (c *Controller) GenerateCertificate(ctx context.Context, profile string) (string, error) {
    logOp("generate_certificate", logrus.Fields{"profile": profile}).Info("Generating certificate")

    result, err := checked(c.inv.Invoke(ctx, "cert_generator",
        "--action", "generate", "--profile", profile))
    if err != nil {
        return "", err
    }

    certPath, ok := result.String("cert_path")
    if !ok {
        certPath = "certs/ca.crt"
    }
    return fmt.Sprintf("Certificate generated: %s", certPath), nil
}

// StartCertServer launches the certificate installer web server as a
// tracked background process.
func (c *Controller) StartCertServer() (string, error) {
    proc, err := c.launcher.LaunchBackground("cert_server")
    if err != nil {
        return "", err
    }
    c.supervisor.Track(proc)
    c.record(journal.EventCertServerStarted, "certificate installer server started")
    return "Certificate server started on port 8888", nil
}

// CertURL returns the URL devices should visit to install the CA
// certificate, based on this machine's LAN address.
func (c *Controller) CertURL(ctx context.Context) (string, error) {
    result, err := c.inv.Invoke(ctx, "netutils", "--action", "get-ip")
    if err != nil {
        return "", err
    }

    ip, ok := result.String("ip")
    if !ok {
        ip = "192.168.1.1"
    }
    return fmt.Sprintf("http://%s:8888", ip), nil
}

// ListNetworkInterfaces returns the host's interfaces as reported by the
// network-utils worker, raw.
func (c *Controller) ListNetworkInterfaces(ctx context.Context) (worker.Result, error) {
    return c.inv.Invoke(ctx, "netutils", "--action", "list-interfaces")
}

// IsElevated reports whether the control plane has the privileges the
// capture workers need (root on unix, administrator on Windows).
func (c *Controller) IsElevated() bool {
    if runtime.GOOS == "windows" {
        // "net session" succeeds only in an elevated shell.
        return exec.Command("net", "session").Run() == nil
    }
    return os.Geteuid() == 0
}

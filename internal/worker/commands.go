// internal/worker/commands.go
//
// Convenience wrappers that shape logical actions into each worker's argv
// convention. These are pure argument-shaping helpers: all execution goes
// through the supplied Invoker.
package worker

import "context"

// QueryDatabase runs the storage worker with an action verb and optional
// flag/value pairs, e.g. QueryDatabase(ctx, inv, "traffic", "--limit", "50").
func QueryDatabase(ctx context.Context, inv Invoker, action string, kv ...string) (Result, error) {
    return inv.Invoke(ctx, "db_manager", append([]string{"--action", action}, kv...)...)
}

// RunBlocking runs the blocking-rules worker with an action verb.
func RunBlocking(ctx context.Context, inv Invoker, action string, kv ...string) (Result, error) {
    return inv.Invoke(ctx, "blocker", append([]string{"--action", action}, kv...)...)
}

// RunAlerts runs the alert worker with an action verb.
func RunAlerts(ctx context.Context, inv Invoker, action string, kv ...string) (Result, error) {
    return inv.Invoke(ctx, "alerts", append([]string{"--action", action}, kv...)...)
}

// ApplyStealthProfile asks the stealth worker to apply a device profile on
// the given interface.
func ApplyStealthProfile(ctx context.Context, inv Invoker, iface, profileID string) (Result, error) {
    return inv.Invoke(ctx, "stealth", "--interface", iface, "--profile", profileID)
}

// ListStealthProfiles returns the stealth worker's profile catalog.
func ListStealthProfiles(ctx context.Context, inv Invoker) (Result, error) {
    return inv.Invoke(ctx, "stealth", "--list-profiles")
}

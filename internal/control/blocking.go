// internal/control/blocking.go
package control

import (
    "context"

    "github.com/sirupsen/logrus"
    "netwarden/internal/worker"
)

// blockActions maps a rule type to the blocker worker's add/remove action
// verbs and the flag that carries the value.
var blockActions = map[string]struct {
    add    string
    remove string
    flag   string
}{
    "domain":   {"block", "unblock", "--domain"},
    "category": {"block-category", "unblock-category", "--category"},
    "keyword":  {"add-keyword", "remove-keyword", "--keyword"},
}

// AddBlockRule installs a blocking rule. An unrecognized rule type fails
// without invoking any worker.
func (c *Controller) AddBlockRule(ctx context.Context, ruleType, value string) error {
    actions, ok := blockActions[ruleType]
    if !ok {
        return &UnsupportedRuleTypeError{Type: ruleType}
    }

    logOp("add_block_rule", logrus.Fields{"type": ruleType, "value": value}).Info("Adding block rule")

    _, err := checked(worker.RunBlocking(ctx, c.inv, actions.add, actions.flag, value))
    return err
}

// RemoveBlockRule removes a blocking rule.
func (c *Controller) RemoveBlockRule(ctx context.Context, ruleType, value string) error {
    actions, ok := blockActions[ruleType]
    if !ok {
        return &UnsupportedRuleTypeError{Type: ruleType}
    }

    logOp("remove_block_rule", logrus.Fields{"type": ruleType, "value": value}).Info("Removing block rule")

    _, err := checked(worker.RunBlocking(ctx, c.inv, actions.remove, actions.flag, value))
    return err
}

// ToggleCategory enables or disables blocking for a whole category.
func (c *Controller) ToggleCategory(ctx context.Context, categoryID string, enabled bool) error {
    action := "unblock-category"
    if enabled {
        action = "block-category"
    }
    _, err := checked(worker.RunBlocking(ctx, c.inv, action, "--category", categoryID))
    return err
}

// BlockConfig returns the blocker worker's full configuration unprocessed.
func (c *Controller) BlockConfig(ctx context.Context) (worker.Result, error) {
    return worker.RunBlocking(ctx, c.inv, "config")
}

// CheckDomain asks the blocker whether a domain would be blocked; the
// verdict is passed through raw.
func (c *Controller) CheckDomain(ctx context.Context, domain string) (worker.Result, error) {
    return worker.RunBlocking(ctx, c.inv, "check", "--domain", domain)
}

// internal/worker/runner.go
package worker

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os/exec"
    "time"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/metrics"
)

// Result is the decoded JSON object a worker printed as its final output
// line. Workers report their own outcome in the "success" field.
type Result map[string]interface{}

// Success reports the worker's own success flag, defaulting to false when
// absent or not a boolean.
func (r Result) Success() bool {
    ok, _ := r["success"].(bool)
    return ok
}

// ErrorMessage extracts the worker's error text, preferring "error" over
// "message", with a generic fallback.
func (r Result) ErrorMessage() string {
    if msg, ok := r["error"].(string); ok && msg != "" {
        return msg
    }
    if msg, ok := r["message"].(string); ok && msg != "" {
        return msg
    }
    return "Unknown error"
}

// Invoker runs a worker to completion and returns its JSON result.
type Invoker interface {
    Invoke(ctx context.Context, workerID string, args ...string) (Result, error)
}

// Launcher starts a worker as a live background process.
type Launcher interface {
    LaunchBackground(workerID string, args ...string) (Process, error)
}

// Runner resolves worker IDs against the configured script registry and
// executes them with the configured interpreter, rooted at the workers
// directory.
type Runner struct {
    cfg *config.Config
}

func NewRunner(cfg *config.Config) *Runner {
    return &Runner{cfg: cfg}
}

func (r *Runner) command(ctx context.Context, workerID string, args []string) (*exec.Cmd, error) {
    script, ok := r.cfg.WorkerScriptPath(workerID)
    if !ok {
        return nil, fmt.Errorf("%w: %s", ErrUnknownWorker, workerID)
    }

    argv := append([]string{script}, args...)
    var cmd *exec.Cmd
    if ctx != nil {
        cmd = exec.CommandContext(ctx, r.cfg.Workers.Interpreter, argv...)
    } else {
        cmd = exec.Command(r.cfg.Workers.Interpreter, argv...)
    }
    cmd.Dir = r.cfg.Workers.Root
    return cmd, nil
}

// Invoke runs the worker to completion and parses its final JSON output
// line. A non-zero exit is reported as an ExecutionError carrying captured
// stderr; spawn failures as SpawnError. There is no timeout beyond what the
// caller's context provides.
func (r *Runner) Invoke(ctx context.Context, workerID string, args ...string) (result Result, err error) {
    start := time.Now()
    defer func() {
        metrics.RecordInvocation(workerID, err, time.Since(start))
    }()

    cmd, err := r.command(ctx, workerID, args)
    if err != nil {
        return nil, err
    }

    var stdout, stderr bytes.Buffer
    cmd.Stdout = &stdout
    cmd.Stderr = &stderr

    logrus.WithFields(logrus.Fields{
        "worker": workerID,
        "args":   args,
    }).Debug("Invoking worker")

    if err := cmd.Run(); err != nil {
        var exitErr *exec.ExitError
        if errors.As(err, &exitErr) {
            return nil, &ExecutionError{
                Worker:   workerID,
                ExitCode: exitErr.ExitCode(),
                Stderr:   stderr.String(),
            }
        }
        return nil, &SpawnError{Worker: workerID, Err: err}
    }

    value, err := ExtractJSON(stdout.Bytes())
    if err != nil {
        var parseErr *ParseError
        if errors.As(err, &parseErr) {
            return nil, &ParseError{Worker: workerID, Err: parseErr.Err}
        }
        return nil, &NoJSONError{Worker: workerID}
    }

    obj, ok := value.(map[string]interface{})
    if !ok {
        return nil, &ParseError{Worker: workerID, Err: errors.New("top-level JSON value is not an object")}
    }
    return Result(obj), nil
}

// LaunchBackground starts the worker and returns a live handle without
// waiting for it to finish. The handle owns the process's stdin/stdout for
// the newline-delimited JSON sub-protocol.
func (r *Runner) LaunchBackground(workerID string, args ...string) (proc Process, err error) {
    defer func() {
        metrics.RecordLaunch(workerID, err)
    }()

    cmd, err := r.command(nil, workerID, args)
    if err != nil {
        return nil, err
    }

    stdin, err := cmd.StdinPipe()
    if err != nil {
        return nil, &SpawnError{Worker: workerID, Err: err}
    }
    stdout, err := cmd.StdoutPipe()
    if err != nil {
        return nil, &SpawnError{Worker: workerID, Err: err}
    }

    if err := cmd.Start(); err != nil {
        return nil, &SpawnError{Worker: workerID, Err: err}
    }

    logrus.WithFields(logrus.Fields{
        "worker": workerID,
        "pid":    cmd.Process.Pid,
        "args":   args,
    }).Info("Launched background worker")

    return newOSProcess(workerID, cmd, stdin, stdout), nil
}

// ExtractJSON implements the worker output contract: stdout is scanned line
// by line, a line whose first non-space character is '{' or '[' is a JSON
// candidate, and the last candidate is parsed as the result. Workers are
// free to interleave diagnostic lines before the final payload.
func ExtractJSON(output []byte) (interface{}, error) {
    var candidate []byte
    for _, line := range bytes.Split(output, []byte("\n")) {
        trimmed := bytes.TrimSpace(line)
        if len(trimmed) == 0 {
            continue
        }
        if trimmed[0] == '{' || trimmed[0] == '[' {
            candidate = trimmed
        }
    }

    if candidate == nil {
        return nil, &NoJSONError{}
    }

    var value interface{}
    if err := json.Unmarshal(candidate, &value); err != nil {
        return nil, &ParseError{Err: err}
    }
    return value, nil
}

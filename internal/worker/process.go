// internal/worker/process.go
package worker

import (
    "bufio"
    "encoding/json"
    "fmt"
    "io"
    "os/exec"
    "sync"

    "github.com/sirupsen/logrus"
)

// Process is a handle on a live background worker. Stopping is forceful:
// the worker gets a kill signal, not a shutdown handshake.
type Process interface {
    // Worker returns the logical worker ID this process was launched as.
    Worker() string
    // PID returns the operating-system process ID.
    PID() int
    // IsAlive reports whether the process has not yet exited.
    IsAlive() bool
    // ForceStop kills the process. Calling it on an exited process is a
    // no-op.
    ForceStop() error
    // Send writes one newline-delimited JSON command to the worker's
    // standard input.
    Send(v interface{}) error
    // ReadResponse reads one newline-delimited JSON object from the
    // worker's standard output, blocking until a line arrives.
    ReadResponse() (map[string]interface{}, error)
}

type osProcess struct {
    worker string
    cmd    *exec.Cmd
    stdin  io.WriteCloser
    stdout *bufio.Reader

    writeMu sync.Mutex
    readMu  sync.Mutex

    done chan struct{}
}

func newOSProcess(worker string, cmd *exec.Cmd, stdin io.WriteCloser, stdout io.Reader) *osProcess {
    p := &osProcess{
        worker: worker,
        cmd:    cmd,
        stdin:  stdin,
        stdout: bufio.NewReader(stdout),
        done:   make(chan struct{}),
    }

    // Reap the child when it exits so killed workers do not linger as
    // zombies.
    go func() {
        err := cmd.Wait()
        close(p.done)
        logrus.WithFields(logrus.Fields{
            "worker": worker,
            "pid":    cmd.Process.Pid,
        }).WithError(err).Debug("Worker process exited")
    }()

    return p
}

func (p *osProcess) Worker() string { return p.worker }

func (p *osProcess) PID() int { return p.cmd.Process.Pid }

func (p *osProcess) IsAlive() bool {
    select {
    case <-p.done:
        return false
    default:
        return true
    }
}

func (p *osProcess) ForceStop() error {
    if !p.IsAlive() {
        return nil
    }
    if err := p.cmd.Process.Kill(); err != nil {
        return fmt.Errorf("failed to kill worker %s (pid %d): %w", p.worker, p.PID(), err)
    }
    return nil
}

func (p *osProcess) Send(v interface{}) error {
    data, err := json.Marshal(v)
    if err != nil {
        return fmt.Errorf("failed to encode command for worker %s: %w", p.worker, err)
    }

    p.writeMu.Lock()
    defer p.writeMu.Unlock()

    w := bufio.NewWriter(p.stdin)
    if _, err := w.Write(append(data, '\n')); err != nil {
        return fmt.Errorf("failed to write command to worker %s: %w", p.worker, err)
    }
    return w.Flush()
}

func (p *osProcess) ReadResponse() (map[string]interface{}, error) {
    p.readMu.Lock()
    defer p.readMu.Unlock()

    line, err := p.stdout.ReadBytes('\n')
    if err != nil {
        return nil, fmt.Errorf("failed to read response from worker %s: %w", p.worker, err)
    }

    var resp map[string]interface{}
    if err := json.Unmarshal(line, &resp); err != nil {
        return nil, &ParseError{Worker: p.worker, Err: err}
    }
    return resp, nil
}

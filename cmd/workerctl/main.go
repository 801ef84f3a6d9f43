// cmd/workerctl/main.go
//
// workerctl invokes a single worker script through the same runner the
// control plane uses and prints the parsed JSON result. Useful for
// checking a worker's output contract without starting the daemon:
//
//	workerctl -worker db_manager -- --action stats
//	workerctl -worker blocker -- --action check --domain ads.example.com
package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "os"
    "time"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/worker"
)

func main() {
    configFile := flag.String("config", "config.yaml", "Configuration file path")
    workerID := flag.String("worker", "", "Logical worker ID to invoke")
    timeout := flag.Duration("timeout", 30*time.Second, "Invocation timeout")
    verbose := flag.Bool("v", false, "Debug logging")
    flag.Parse()

    if *workerID == "" {
        fmt.Fprintln(os.Stderr, "workerctl: -worker is required")
        flag.Usage()
        os.Exit(2)
    }

    if *verbose {
        logrus.SetLevel(logrus.DebugLevel)
    } else {
        logrus.SetLevel(logrus.WarnLevel)
    }

    cfg, err := config.LoadOrDefault(*configFile)
    if err != nil {
        logrus.Fatalf("Failed to load config: %v", err)
    }

    runner := worker.NewRunner(cfg)

    ctx, cancel := context.WithTimeout(context.Background(), *timeout)
    defer cancel()

    result, err := runner.Invoke(ctx, *workerID, flag.Args()...)
    if err != nil {
        fmt.Fprintf(os.Stderr, "workerctl: %v\n", err)
        os.Exit(1)
    }

    out, err := json.MarshalIndent(result, "", "  ")
    if err != nil {
        logrus.Fatalf("Failed to render result: %v", err)
    }
    fmt.Println(string(out))

    if !result.Success() {
        fmt.Fprintf(os.Stderr, "workerctl: worker reported failure: %s\n", result.ErrorMessage())
        os.Exit(1)
    }
}

// Package main provides the surf action-runner CLI. It opens a browser
// session, reads one JSON action per stdin line, executes each against
// the live page, and prints one JSON result per line.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/surf/pkg/actions"
	"github.com/entrhq/surf/pkg/browser"
	"github.com/entrhq/surf/pkg/config"
	"github.com/entrhq/surf/pkg/logging"
)

const version = "0.1.0"

// Config holds the application configuration
type Config struct {
	ConfigPath  string
	StartURL    string
	SessionName string
	Headless    bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("surf v%s\n", version)
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "surf: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default ~/.surf/config.json)")
	flag.StringVar(&cfg.StartURL, "url", "", "URL to open before reading actions")
	flag.StringVar(&cfg.SessionName, "session", "default", "Browser session name")
	flag.BoolVar(&cfg.Headless, "headless", true, "Run the browser headless")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	if err := config.Initialize(cfg.ConfigPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.NewLogger("main")
	if err != nil {
		// Logger already fell back to stderr; keep going.
		fmt.Fprintf(os.Stderr, "surf: file logging unavailable: %v\n", err)
	}
	defer log.Close()

	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	session, err := manager.StartSession(cfg.SessionName, browser.SessionOptions{
		Headless: cfg.Headless,
	})
	if err != nil {
		return err
	}

	executor := newExecutor(session, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shut the browser down cleanly on interrupt.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
		manager.Shutdown()
		os.Exit(130)
	}()

	if cfg.StartURL != "" {
		result := executor.Execute(ctx, &actions.Action{
			Type: actions.ActionNavigate,
			URL:  cfg.StartURL,
		})
		printResult(result)
		if !result.Success {
			return fmt.Errorf("failed to open start URL: %s", result.Message)
		}
	}

	return runLoop(ctx, executor, log)
}

// newExecutor wires the action engine to the session with timeouts and
// navigation policy from global config.
func newExecutor(session *browser.Session, log *logging.Logger) *actions.Executor {
	timeouts := config.GetTimeouts()
	scroll := config.GetScroll()

	engineCfg := actions.Config{
		ShortTimeout:      timeouts.Short(),
		ActionTimeout:     timeouts.Action(),
		NavigationTimeout: timeouts.Navigation(),
		MaxScrollAmount:   scroll.MaxAmount(),
		ScrollSettle:      500 * time.Millisecond,
	}

	opts := []actions.Option{
		actions.WithTabManager(session.Tabs()),
		actions.WithLogger(log),
	}
	if navigation := config.GetNavigation(); navigation != nil {
		opts = append(opts, actions.WithURLPolicy(navigation))
	}

	return actions.NewExecutor(session, engineCfg, opts...)
}

// runLoop reads one JSON action per line and prints one JSON result per
// line until stdin closes.
func runLoop(ctx context.Context, executor *actions.Executor, log *logging.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var action actions.Action
		if err := json.Unmarshal(line, &action); err != nil {
			printResult(&actions.ActionResult{
				Success: false,
				Message: fmt.Sprintf("Error: invalid action JSON: %v", err),
			})
			continue
		}

		log.Infof("executing action %s", action.Type)
		result := executor.Execute(ctx, &action)
		printResult(result)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func printResult(result *actions.ActionResult) {
	encoded, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "surf: failed to encode result: %v\n", err)
		return
	}
	fmt.Println(string(encoded))
}

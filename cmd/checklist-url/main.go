package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	dispatchcmd "github.com/goliatone/go-checklist/internal/commands/dispatch"
	"github.com/goliatone/go-checklist/internal/dispatch"
	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/internal/logging/console"
	"github.com/goliatone/go-checklist/internal/runtimeconfig"
)

var systemBuilder = func() dispatch.System {
	return dispatch.NewExecSystem(nil)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run returns the process exit code. Everything after startup is reported
// through the log file because the handler runs without a terminal.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	code := dispatch.ExitSuccess
	app := &cli.App{
		Name:           "checklist-url",
		Usage:          "Handle onboarding:// links opened from the checklist pages",
		ArgsUsage:      "URL",
		ErrWriter:      stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to checklists.yaml",
				EnvVars: []string{"CHECKLISTS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Append-only log file (defaults to dispatch.log_file)",
				EnvVars: []string{"CHECKLISTS_DISPATCH_LOG_FILE"},
			},
		},
		Action: func(c *cli.Context) error {
			code = handle(c)
			return nil
		},
	}

	if err := app.RunContext(ctx, append([]string{"checklist-url"}, args...)); err != nil {
		fmt.Fprintf(stderr, "checklist-url: %v\n", err)
		return dispatch.ExitFailure
	}
	return code
}

func handle(c *cli.Context) int {
	cfg, err := runtimeconfig.Load(c.String("config"))
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "checklist-url: %v\n", err)
		return dispatch.ExitFailure
	}

	logPath := strings.TrimSpace(c.String("log-file"))
	if logPath == "" {
		logPath = cfg.Dispatch.LogFile
	}
	if logPath, err = runtimeconfig.ExpandHome(logPath); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "checklist-url: %v\n", err)
		return dispatch.ExitFailure
	}

	opts := console.Options{Color: true}
	if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
		opts.MinLevel = &level
	}
	provider, closer, err := console.NewFileProvider(logPath, opts)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "checklist-url: open log: %v\n", err)
		return dispatch.ExitFailure
	}
	defer closer.Close()

	logger := logging.DispatchLogger(provider)
	if c.NArg() == 0 {
		logger.Info("checklist.dispatch.no_url", "message", "started without a URL; nothing to do")
		return dispatch.ExitSuccess
	}

	dispatcher := dispatch.New(dispatch.Config{
		Scheme:        cfg.Dispatch.Scheme,
		HelperProcess: cfg.Dispatch.HelperProcess,
		HelperBundle:  cfg.Dispatch.HelperBundle,
	}, systemBuilder(), logger)
	handler := dispatchcmd.NewDispatchURLHandler(dispatcher, logging.ModuleLogger(provider, logging.CommandModule("dispatch")))

	return dispatch.Guard(logger, func() error {
		return handler.Execute(c.Context, dispatchcmd.DispatchURLCommand{URL: c.Args().First()})
	})
}

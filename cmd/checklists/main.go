package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-checklist/cmd/checklists/internal/bootstrap"
	buildcmd "github.com/goliatone/go-checklist/internal/commands/build"
	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/internal/runtimeconfig"
	"github.com/goliatone/go-checklist/internal/watcher"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

type buildHandler interface {
	Execute(ctx context.Context, msg buildcmd.BuildChecklistsCommand) error
}

type cleanHandler interface {
	Execute(ctx context.Context, msg buildcmd.CleanOutputCommand) error
}

type watchRunner interface {
	Run(ctx context.Context) error
}

type handlerSet struct {
	build buildHandler
	clean cleanHandler
}

type moduleOptions = bootstrap.Options

type moduleResources struct {
	handlers handlerSet
	config   runtimeconfig.Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
}

var moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
	module, err := bootstrap.BuildModule(opts)
	if err != nil {
		return nil, err
	}
	return &moduleResources{
		handlers: handlerSet{build: module.Build, clean: module.Clean},
		config:   module.Config,
		provider: module.Provider,
		logger:   module.Logger,
	}, nil
}

var watcherBuilder = func(cfg watcher.Config, runner watcher.Runner, logger interfaces.Logger) (watchRunner, error) {
	return watcher.New(cfg, runner, watcher.WithLogger(logger))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Printf("checklists: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	return newApp(stdout).RunContext(ctx, append([]string{"checklists"}, args...))
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:           "checklists",
		Usage:          "Build the onboarding checklist pages",
		Writer:         stdout,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to checklists.yaml (searched in . and ./config when empty)",
				EnvVars: []string{"CHECKLISTS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"CHECKLISTS_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Render the checklist pages into the output directory",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "variant",
						Usage: "Limit the build to the named variant (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Render and verify without writing files",
					},
				},
				Action: runBuild,
			},
			{
				Name:   "watch",
				Usage:  "Rebuild whenever the sources change",
				Action: runWatch,
			},
			{
				Name:   "clean",
				Usage:  "Remove generated pages and manifests",
				Action: runClean,
			},
		},
		Action: runBuild,
	}
}

func loadModule(c *cli.Context) (*moduleResources, error) {
	module, err := moduleBuilder(moduleOptions{
		ConfigPath: c.String("config"),
		LogLevel:   c.String("log-level"),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil {
		return nil, errors.New("bootstrap module: no module returned")
	}
	module.logger = logging.Ensure(module.logger)
	return module, nil
}

func runBuild(c *cli.Context) error {
	module, err := loadModule(c)
	if err != nil {
		return err
	}
	if module.handlers.build == nil {
		return errors.New("build handler not configured")
	}

	var envelope buildcmd.ResultEnvelope
	cmd := buildcmd.BuildChecklistsCommand{
		Variants: c.StringSlice("variant"),
		DryRun:   c.Bool("dry-run"),
		ResultCallback: func(res buildcmd.ResultEnvelope) {
			envelope = res
		},
	}
	if err := module.handlers.build.Execute(c.Context, cmd); err != nil {
		return fmt.Errorf("build checklists: %w", err)
	}

	printBuildSummary(c.App.Writer, envelope.Result)
	return nil
}

func runClean(c *cli.Context) error {
	module, err := loadModule(c)
	if err != nil {
		return err
	}
	if module.handlers.clean == nil {
		return errors.New("clean handler not configured")
	}
	if err := module.handlers.clean.Execute(c.Context, buildcmd.CleanOutputCommand{}); err != nil {
		return fmt.Errorf("clean output: %w", err)
	}
	printCleanSummary(c.App.Writer, module.config.Build.Resolve(module.config.Build.OutputDir))
	return nil
}

func runWatch(c *cli.Context) error {
	module, err := loadModule(c)
	if err != nil {
		return err
	}

	argv := module.config.Watch.Command
	if len(argv) == 0 {
		var extra []string
		if path := strings.TrimSpace(c.String("config")); path != "" {
			extra = append(extra, "--config", path)
		}
		if level := strings.TrimSpace(c.String("log-level")); level != "" {
			extra = append(extra, "--log-level", level)
		}
		if argv, err = watcher.DefaultCommand(extra...); err != nil {
			return err
		}
	}

	runner := watcher.CommandRunner{
		Argv:   argv,
		Stdout: c.App.Writer,
		Stderr: c.App.ErrWriter,
	}
	cfg := watcher.Config{
		Paths:    bootstrap.WatchPaths(module.config),
		Exclude:  []string{module.config.Build.Resolve(module.config.Build.OutputDir)},
		Debounce: module.config.Watch.Debounce,
	}

	w, err := watcherBuilder(cfg, runner, logging.WatchLogger(module.provider))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	return w.Run(c.Context)
}

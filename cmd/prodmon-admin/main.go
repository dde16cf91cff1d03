package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/sigmaport/prodmon-ui/config"
	"github.com/sigmaport/prodmon-ui/internal/bootstrap"
)

type commandFn func(cc *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Stdin  io.Reader
	Stdout io.Writer

	// readPassword prompts without echo. Replaced in tests.
	readPassword func(prompt string) (string, error)
}

func main() {
	logger := bootstrap.InitLogger(config.LogConfig{Level: "warn", Format: "text"})

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cc := &commandContext{
		Ctx:          ctx,
		Logger:       logger,
		Config:       cfg,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		readPassword: terminalPassword,
	}
	runErr := cmd.run(cc, os.Args[2:])
	stop()
	if runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in and store the session token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and remove the stored token",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in operator",
			run:         runWhoami,
		},
		"units": {
			name:        "units",
			description: "List units and whether you may manage them",
			run:         runUnits,
		},
		"rilis": {
			name:        "rilis",
			description: "Print the monthly release table of a module",
			run:         runRilis,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: prodmon-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

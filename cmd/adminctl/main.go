// adminctl is the command-line frontend for the mock/proxy admin API. It
// manages the local session (login, logout, proactive token refresh) and
// drives the mock-endpoint, proxy-endpoint, and user CRUD operations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/mocksmith/adminctl/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	App    *bootstrap.App
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	ctx := context.Background()
	app, err := bootstrap.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "initialize application", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal startup failure to callers
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close application failed", "error", closeErr)
		}
	}()

	// Resolve the stored session before any command runs. A session that
	// cannot be restored leaves the process unauthenticated, never errored.
	app.Controller.Boot(ctx)

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		App:    app,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate and store the session locally",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create an account and store the session locally",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Clear the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the authenticated user",
			run:         runWhoami,
		},
		"status": {
			name:        "status",
			description: "Show session status and access-token expiry",
			run:         runStatus,
		},
		"endpoints": {
			name:        "endpoints",
			description: "Manage mock endpoints (list|get|create|update|delete|stats)",
			run:         runEndpoints,
		},
		"proxies": {
			name:        "proxies",
			description: "Manage proxy endpoints (list|get|create|update|delete|stats)",
			run:         runProxies,
		},
		"users": {
			name:        "users",
			description: "Manage user accounts (list|get|create|update|delete)",
			run:         runUsers,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: adminctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

// Command tkxr is a flat-file issue tracker for tasks, bugs, sprints,
// users and comments, with an HTTP server and an MCP server built in.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tkxr/tkxr/internal/chunklog"
	"github.com/tkxr/tkxr/internal/config"
	"github.com/tkxr/tkxr/internal/notify"
	"github.com/tkxr/tkxr/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr: stdout carries command output, and in mcp mode
	// it carries JSON-RPC.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	verb, args := os.Args[1], os.Args[2:]

	app := &app{cfg: cfg, logger: logger}

	var runErr error
	switch verb {
	case "create":
		runErr = app.runCreate(args)
	case "list":
		runErr = app.runList(args)
	case "status":
		runErr = app.runStatus(args)
	case "show":
		runErr = app.runShow(args)
	case "delete":
		runErr = app.runDelete(args)
	case "user":
		runErr = app.runUser(args)
	case "users":
		runErr = app.runUsers(args)
	case "sprint":
		runErr = app.runSprint(args)
	case "sprints":
		runErr = app.runSprints(args)
	case "comments":
		runErr = app.runComments(args)
	case "serve":
		runErr = app.runServe(args)
	case "mcp":
		runErr = app.runMCP(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		printUsage()
		os.Exit(2)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// service wires the storage backend and facade. CLI commands notify a
// locally running server best-effort; serve and mcp pass nil to avoid the
// server notifying itself.
func (a *app) service(withNotifier bool) (*tracker.Service, error) {
	store, err := chunklog.New(a.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	var notifier tracker.Notifier
	if withNotifier {
		notifier = notify.NewClient(a.cfg.Notify.URL, a.logger)
	}

	return tracker.NewService(
		chunklog.NewTicketRepository(store),
		chunklog.NewSprintRepository(store),
		chunklog.NewUserRepository(store),
		chunklog.NewCommentRepository(store),
		chunklog.NewArchiveRepository(store),
		notifier,
		a.logger,
	), nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printUsage() {
	fmt.Print(`tkxr - flat-file issue tracker

Usage:
  tkxr create <task|bug> <title> [options]   Create a ticket
  tkxr list [tasks|bugs|sprints|users] [options]
  tkxr status <id> <todo|progress|done>      Update ticket status
  tkxr show <id>                             Show ticket details
  tkxr delete <id> [--force]                 Delete an entity
  tkxr user create <username> <displayName> [--email <email>]
  tkxr users                                 List users
  tkxr sprint create <name> [options]        Create a sprint
  tkxr sprint status <id> <planning|active|completed>
  tkxr sprints [--status <status>] [--archived]
  tkxr comments <ticket-id> [--add --author <user> --content <text>]
  tkxr serve [--port <port>]                 Start the HTTP server
  tkxr mcp [--http [--port <port>]]          Start the MCP server (stdio or HTTP)

Environment:
  TKXR_STORAGE_PATH   Storage root directory (default "tkxr")
  TKXR_CONFIG_PATH    Optional YAML config file
  TKXR_LOG_LEVEL      debug, info, warn or error (default "info")
`)
}

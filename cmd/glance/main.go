package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hpungsan/glance/internal/blob"
	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/config"
	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/logging"
	"github.com/hpungsan/glance/internal/mcp"
	"github.com/hpungsan/glance/internal/ops"
	"github.com/hpungsan/glance/internal/source"
	"github.com/hpungsan/glance/internal/webhook"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"capture": true, "latest": true, "list": true, "get": true,
	"delete": true, "retry": true, "cleanup": true, "stats": true,
	"webhook-test": true,
	"help":         true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    __ _ | __ _  _ __   ___  ___
   / _' || /  ' \| '_ \ / __|/ _ \
  | (_| || | (_| | | | | (__|  __/
   \__, ||_|\__,_|_| |_|\___|\___|
   |___/

  Desktop context capture

  Usage: glance <command> [options]
         glance --help

  MCP server mode requires piped input.`)
}

// newEnv assembles the capture pipeline against baseDir. The webhook
// sender stays nil when no URL is configured; delivery is skipped
// entirely in that case.
func newEnv(baseDir string, cfg *config.Config) (*ops.Env, func(), error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db.ConfigurePool(database, cfg)

	blobs, err := blob.New(baseDir)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to initialize capture storage: %w", err)
	}

	env := &ops.Env{
		DB:      database,
		Blobs:   blobs,
		Sources: source.NewSet(cfg),
		Latest:  &capture.LatestSlot{},
		Cfg:     cfg,
	}
	if cfg.WebhookURL != "" {
		env.Webhook = webhook.NewClient(cfg)
	}

	return env, func() { database.Close() }, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any setup (no storage needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Local .env overrides for GLANCE_* settings; absence is fine
	_ = godotenv.Load()

	logging.Init()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := os.Getenv("GLANCE_DATA_DIR")
	if baseDir == "" {
		baseDir = filepath.Join(homeDir, ".glance")
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "warning: unknown disabled_tools entries: %v\n", unknown)
	}

	env, closeEnv, err := newEnv(baseDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeEnv()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'glance --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(env, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/valkit/valkit/config"
	"github.com/valkit/valkit/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	Config string
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a valkit config file (YAML)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: valkit mcp [flags]\n\n")
		Writef(fs.Output(), "Run the valkit MCP server over stdio. The server exposes validate,\n")
		Writef(fs.Output(), "convert_type, check_integrity, and registry tools to MCP clients.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nDefaults are configurable via VALKIT_* environment variables;\n")
		Writef(fs.Output(), "see the server instructions for the full list.\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	var paths []string
	if flags.Config != "" {
		paths = append(paths, flags.Config)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	// Log to stderr; stdout belongs to the MCP stdio transport.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}

func logLevel(level string) slog.Level {
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

// Package cli implements the scan-diagrams command-line interface.
//
// Commands render the book diagrams (dimensions, overview, rules), work
// with group regions on page scans (rescale, bounds, debug-region,
// evaluate) and run the stdio tool server (serve).
//
// All commands accept --verbose (-v) for debug logging and --config to
// name a configuration file. Loggers are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-diagrams/internal/config"
)

const appName = "scan-diagrams"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w at level, with the built-in configuration
// until a command loads the real one.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "scan-diagrams draws diagrams of scanned books and locates fields on page scans",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/scan-diagrams/config.toml)")

	root.AddCommand(c.dimensionsCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.rescaleCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.debugRegionCommand())
	root.AddCommand(c.evaluateCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := parseLevel(cfg.LogLevel)
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// Execute runs the CLI with args and returns the first command error.
func Execute(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

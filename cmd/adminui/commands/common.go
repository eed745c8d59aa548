package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/familyai/adminui/internal/config"
	"git.home.luguber.info/familyai/adminui/internal/emitter"
	"git.home.luguber.info/familyai/adminui/internal/logfields"
	"git.home.luguber.info/familyai/adminui/internal/version"
)

// Global context passed to subcommands.
type Global struct {
	// Stdout receives user-facing messages; logs go to stderr.
	Stdout io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional; nothing is read when unset)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Write the admin UI page (default command)"`
	Check CheckCmd `cmd:"" help:"Verify that an existing admin UI page is current"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`

	cfg *config.Config `kong:"-"`
}

// Options returns the kong options shared by main and tests.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("adminui"),
		kong.Description("Generate the FamilyAI admin UI stub page."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	setupLogging(config.Default().Logging, c.Verbose)
	return nil
}

// LoadConfig returns the configuration named by --config, or the defaults
// when the flag is unset. The file is read at most once; its logging
// section replaces the startup logger.
func (c *CLI) LoadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if c.Config == "" {
		c.cfg = config.Default()
		return c.cfg, nil
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Logging, c.Verbose)
	slog.Debug("Configuration loaded", logfields.ConfigPath(c.Config))
	c.cfg = cfg
	return cfg, nil
}

func setupLogging(lc config.LoggingConfig, verbose bool) {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if lc.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ResolveOutputDir determines the final output directory.
// Priority: CLI flag > config base_directory + directory > config directory > <cwd>/dist
func ResolveOutputDir(cliOutput string, cfg *config.Config) (string, error) {
	if cliOutput != "" {
		return cliOutput, nil
	}
	if dir := cfg.OutputDir(); dir != "" {
		return dir, nil
	}
	return emitter.DefaultOutputDir()
}

func stdout(g *Global) io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/familyai/adminui/internal/emitter"
)

// CheckCmd implements the 'check' command for CI pipelines: it fails when the
// committed or deployed page differs from what build would write.
type CheckCmd struct {
	Output string `short:"o" help:"Output directory holding index.html (default: ./dist)"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	outputDir, err := ResolveOutputDir(c.Output, cfg)
	if err != nil {
		return err
	}
	if err := emitter.NewEmitter().WithLogger(slog.Default()).Verify(outputDir); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout(g), "%s is up to date\n", emitter.Target(outputDir))
	return nil
}

package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/familyai/adminui/internal/emitter"
	ferrors "git.home.luguber.info/familyai/adminui/internal/foundation/errors"
	"git.home.luguber.info/familyai/adminui/internal/logfields"
	"git.home.luguber.info/familyai/adminui/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the page (default: ./dist)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus textfile metrics for this run to the given path"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	outputDir, err := ResolveOutputDir(b.Output, cfg)
	if err != nil {
		return err
	}

	textfile := b.MetricsFile
	if textfile == "" {
		textfile = cfg.Monitoring.Metrics.Textfile
	}

	em := emitter.NewEmitter().WithLogger(slog.Default())
	var reg *prom.Registry
	if textfile != "" {
		reg = prom.NewRegistry()
		em.SetRecorder(metrics.NewPrometheusRecorder(reg))
	}

	emitErr := em.Emit(outputDir)

	if reg != nil {
		if err := metrics.WriteTextfile(reg, textfile); err != nil {
			if emitErr != nil {
				slog.Warn("Failed to write metrics textfile", logfields.Path(textfile), logfields.Error(err))
				return emitErr
			}
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write metrics").
				WithContext(logfields.KeyPath, textfile).
				Build()
		}
	}
	return emitErr
}

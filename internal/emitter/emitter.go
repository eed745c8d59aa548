// Package emitter writes the admin UI stub page into an output directory.
//
// An emit is two filesystem steps run once, in order: create the output
// directory with all missing parents, then create or truncate index.html and
// write the document. There is no retry, no lock and no temp-file rename, so
// two emitters racing on the same directory end with the last writer's bytes.
// A failed write may leave index.html truncated or absent.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/familyai/adminui/internal/foundation/errors"
	"git.home.luguber.info/familyai/adminui/internal/logfields"
	"git.home.luguber.info/familyai/adminui/internal/metrics"
	"git.home.luguber.info/familyai/adminui/internal/page"
)

// DefaultDirName is the output directory created under the working directory
// when none is configured.
const DefaultDirName = "dist"

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// ErrContentMismatch is returned by Verify when index.html holds other bytes
// than the admin UI document.
var ErrContentMismatch = errors.New("index.html does not match the admin UI document")

// Emitter writes the stub page. The zero value is not usable; use NewEmitter.
type Emitter struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	newRunID func() string
}

// NewEmitter creates an emitter logging to slog.Default and recording nothing.
func NewEmitter() *Emitter {
	return &Emitter{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		newRunID: func() string { return uuid.NewString() },
	}
}

// SetRecorder injects a metrics recorder (optional). Returns the emitter for chaining.
func (e *Emitter) SetRecorder(r metrics.Recorder) *Emitter {
	if r == nil {
		e.recorder = metrics.NoopRecorder{}
		return e
	}
	e.recorder = r
	return e
}

// WithLogger replaces the logger. A nil logger is ignored.
func (e *Emitter) WithLogger(l *slog.Logger) *Emitter {
	if l != nil {
		e.logger = l
	}
	return e
}

// Emit uses a default emitter to write the page into outputDir.
func Emit(outputDir string) error {
	return NewEmitter().Emit(outputDir)
}

// DefaultOutputDir returns <cwd>/dist.
func DefaultOutputDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve working directory").Build()
	}
	return filepath.Join(wd, DefaultDirName), nil
}

// Target returns the path of the page inside outputDir.
func Target(outputDir string) string {
	return filepath.Join(outputDir, page.FileName)
}

// Emit ensures outputDir exists and writes the page to outputDir/index.html,
// replacing whatever was there. Every failure is a filesystem error wrapping
// the underlying *fs.PathError.
func (e *Emitter) Emit(outputDir string) error {
	runID := e.newRunID()
	target := Target(outputDir)
	log := e.logger.With(logfields.RunID(runID))
	start := time.Now()

	log.LogAttrs(context.Background(), slog.LevelDebug, "Emitting admin UI page",
		logfields.OutputDir(outputDir), logfields.Path(target))

	n, err := write(outputDir, target)
	elapsed := time.Since(start)
	e.recorder.ObserveEmitDuration(elapsed)
	if err != nil {
		e.recorder.IncEmitOutcome(metrics.OutcomeFailed)
		log.LogAttrs(context.Background(), slog.LevelDebug, "Emit failed",
			logfields.Path(target), logfields.Duration(elapsed), logfields.Error(err))
		return err
	}

	e.recorder.IncEmitOutcome(metrics.OutcomeSuccess)
	e.recorder.SetDocumentBytes(n)
	log.LogAttrs(context.Background(), slog.LevelInfo, "Admin UI page written",
		logfields.Path(target), logfields.Bytes(n), logfields.Duration(elapsed))
	return nil
}

func write(outputDir, target string) (int, error) {
	// #nosec G301 -- the output is a public static site.
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return 0, fsError("create output directory", outputDir, err)
	}

	doc := page.Document()

	// #nosec G302 G304 -- target is outputDir/index.html, served publicly.
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fsError("write "+page.FileName, target, err)
	}
	n, werr := f.Write(doc)
	cerr := f.Close()
	if werr != nil {
		return n, fsError("write "+page.FileName, target, werr)
	}
	if cerr != nil {
		return n, fsError("write "+page.FileName, target, cerr)
	}
	return n, nil
}

// Verify checks that outputDir/index.html holds exactly the admin UI document.
func (e *Emitter) Verify(outputDir string) error {
	target := Target(outputDir)

	// #nosec G304 -- target is outputDir/index.html.
	data, err := os.ReadFile(target)
	if err != nil {
		return fsError("read "+page.FileName, target, err)
	}
	if page.Equal(data) {
		e.logger.Info("Admin UI page is up to date", logfields.Path(target), logfields.Bytes(len(data)))
		return nil
	}

	cause := ErrContentMismatch
	if verr := page.Validate(data); verr != nil {
		cause = errors.Join(ErrContentMismatch, verr)
	}
	return ferrors.ValidationError(fmt.Sprintf("verify %s", target)).
		WithCause(cause).
		WithContext(logfields.KeyPath, target).
		WithContext(logfields.KeyBytes, len(data)).
		Build()
}

func fsError(op, path string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, op).
		WithContext(logfields.KeyPath, path).
		Build()
}

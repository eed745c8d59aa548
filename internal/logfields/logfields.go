package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyOutputDir  = "output_dir"
	KeyPath       = "path"
	KeyBytes      = "bytes"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyConfig     = "config"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func OutputDir(dir string) slog.Attr { return slog.String(KeyOutputDir, dir) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Bytes(n int) slog.Attr          { return slog.Int(KeyBytes, n) }
func Outcome(o string) slog.Attr     { return slog.String(KeyOutcome, o) }
func ConfigPath(p string) slog.Attr  { return slog.String(KeyConfig, p) }

func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

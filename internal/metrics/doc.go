// Package metrics records what a build run did.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never nil-check. When a metrics textfile is
// configured the CLI swaps in a PrometheusRecorder backed by its own registry
// and writes the registry with WriteTextfile once the run finishes, in the
// format read by the node exporter textfile collector.
package metrics

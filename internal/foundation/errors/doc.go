// Package errors provides classified error primitives for the admin UI build step.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, internal)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: retry hint; the build step itself never retries
//   - ClassifiedError: structured error with category, severity, context and cause
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and stderr presentation for the command line
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write index.html").
//		WithContext("path", target).
//		Build()
package errors

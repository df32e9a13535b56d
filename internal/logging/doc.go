// Package logging provides structured logging utilities for calexport.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Handler construction from the --debug and --log-format options
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for packages that only need leveled logging
//
// # Usage Patterns
//
// Create the process logger once in the command layer:
//
//	logger, err := logging.New(os.Stderr, logging.LevelInfo, logging.FormatText)
//
// Attach standard attributes:
//
//	logger = logging.WithOperation(logger, "export")
//	logger.Info("exported events",
//	    logging.Count(len(events)),
//	    logging.Output(path))
package logging

// Package cmd implements the rvec command-line interface.
//
// The package is organized into several subpackages:
//
//   - run: Executes scripts against a registry of in-memory RangeVecs
//   - perf: Benchmarks of the RangeVec operations and of the registry
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable prefixed with RVEC_
// (e.g. RVEC_LOG_LEVEL=debug), .env and .env.local files are loaded on start.
//
// See rvec -help for a list of all commands.
package cmd

// Package common provides configuration structures and logging utilities
// shared by the rvec command line tools.
//
// Key Components:
//
//   - CLIConfig: Settings of the script runner (initial store, statistics).
//
//   - PerfConfig: Settings of the performance test tool, including validation
//     and the list of skipped benchmarks.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's logger
//     package (logger.SetLoggerFactory), so that every package can obtain a named
//     logger with logger.GetLogger and all lines share one format:
//
//     2025/01/01 12:00:00 DEBUG | registry        | created range vec "cpu"
package common

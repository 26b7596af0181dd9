package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Formatting helper
// --------------------------------------------------------------------------

// configWriter renders configs as sections of aligned name/value pairs
type configWriter struct {
	sb strings.Builder
}

func (w *configWriter) addSection(title string) {
	w.sb.WriteString("\n")
	w.sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
}

func (w *configWriter) addField(name, value string) {
	w.sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

// --------------------------------------------------------------------------
// Script runner configuration
// --------------------------------------------------------------------------

// CLIConfig holds the settings of the script runner
type CLIConfig struct {
	// Store is the name of the RangeVec selected before the first use command
	Store string
	// Stats enables the operation counters and timers
	Stats bool

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *CLIConfig) String() string {
	var w configWriter

	w.addSection("Script Runner")
	w.addField("Initial Store", c.Store)
	w.addField("Stats", strconv.FormatBool(c.Stats))

	w.addSection("Logging")
	w.addField("Log Level", c.LogLevel)

	return w.sb.String()
}

// --------------------------------------------------------------------------
// Performance test configuration
// --------------------------------------------------------------------------

// PerfConfig holds the settings of the performance test tool
type PerfConfig struct {
	// Width is the number of consecutive indices every benchmark works on
	Width uint64
	// Stores is the number of RangeVecs used by the registry benchmark
	Stores int
	// Threads is the number of goroutines used by the registry benchmark
	Threads int
	// Skip lists benchmarks that are not run
	Skip []string

	// optional outputs
	CSVPath        string
	PrometheusPath string

	// Logging configuration
	LogLevel string
}

// ShouldSkip reports whether the named benchmark is in the skip list
func (c *PerfConfig) ShouldSkip(test string) bool {
	for _, skip := range c.Skip {
		if strings.TrimSpace(skip) == test {
			return true
		}
	}
	return false
}

// Validate checks the configuration for values the benchmarks cannot work with
func (c *PerfConfig) Validate() error {
	if c.Width == 0 {
		return fmt.Errorf("width must be at least 1")
	}
	if c.Stores < 1 {
		return fmt.Errorf("stores must be at least 1, got %d", c.Stores)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *PerfConfig) String() string {
	var w configWriter

	w.addSection("Benchmarks")
	w.addField("Width", strconv.FormatUint(c.Width, 10))
	w.addField("Stores", strconv.Itoa(c.Stores))
	w.addField("Threads", strconv.Itoa(c.Threads))
	w.addField("Skip", orNone(strings.Join(c.Skip, ",")))

	w.addSection("Output")
	w.addField("CSV", orNone(c.CSVPath))
	w.addField("Prometheus", orNone(c.PrometheusPath))

	w.addSection("Logging")
	w.addField("Log Level", c.LogLevel)

	return w.sb.String()
}

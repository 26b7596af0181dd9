package util

import (
	"fmt"
	"github.com/ValentinKolb/rangevec/lib/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and binds environment variables with the RVEC_ prefix
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("rvec")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// InitLogging configures all loggers with the configured log level
func InitLogging() error {
	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// GetCLIConfig reads the script runner configuration from viper
func GetCLIConfig() *common.CLIConfig {
	return &common.CLIConfig{
		Store:    viper.GetString("store"),
		Stats:    viper.GetBool("stats"),
		LogLevel: viper.GetString("log-level"),
	}
}

// GetPerfConfig reads the performance test configuration from viper
func GetPerfConfig() *common.PerfConfig {
	var skip []string
	for _, s := range strings.Split(viper.GetString("skip"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			skip = append(skip, s)
		}
	}

	return &common.PerfConfig{
		Width:          viper.GetUint64("width"),
		Stores:         viper.GetInt("stores"),
		Threads:        viper.GetInt("threads"),
		Skip:           skip,
		CSVPath:        viper.GetString("csv"),
		PrometheusPath: viper.GetString("prometheus"),
		LogLevel:       viper.GetString("log-level"),
	}
}

package run

import (
	"fmt"
	"github.com/ValentinKolb/rangevec/cmd/util"
	"github.com/ValentinKolb/rangevec/lib/rangevec"
	"github.com/ValentinKolb/rangevec/lib/registry"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strings"
)

var Logger = logger.GetLogger("cli")

var (
	// RunCmd executes a script against a set of in-memory RangeVecs
	RunCmd = &cobra.Command{
		Use:   "run [file|-]",
		Short: "Execute a RangeVec script",
		Long: fmt.Sprintf(`Execute a RangeVec script read from a file or from stdin.

Every line holds one command, '#' starts a comment. All commands work on
the selected store (int64 values, default 0), stores are created on first
write. Available commands:

  %s`, strings.Join(CommandNames(), ", ")),
		Args:    cobra.MaximumNArgs(1),
		PreRunE: processRunConfig,
		RunE:    runScript,
	}
)

func init() {
	key := "store"
	RunCmd.Flags().String(key, "default", util.WrapString("Name of the store selected at the start of the script"))
	key = "stats"
	RunCmd.Flags().Bool(key, false, util.WrapString("Print counters and timers for every command after the script finished"))
}

func processRunConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	config := util.GetCLIConfig()
	Logger.Debugf("configuration:%s", config.String())

	var input io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer file.Close()
		input = file
	}

	reg := registry.New(rangevec.New[int64])
	in := NewInterpreter(reg, config.Store, cmd.OutOrStdout(), config.Stats)

	err := in.Run(input)
	in.WriteStats(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	Logger.Debugf("script finished, %d stores", reg.Len())
	return nil
}

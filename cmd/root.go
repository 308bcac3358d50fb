package cmd

import (
	"fmt"
	"os"

	"tree-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tree-reconciler",
	Short: "Tree Children Reconciliation Service",
	Long: `Tree Reconciler turns one rendered tree into the next with the fewest host
mutations. It serves diffs over HTTP, runs stored scenarios and diffs local files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config (ISO8601 timestamps) for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

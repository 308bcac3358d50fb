package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"tree-reconciler/core/config"
	"tree-reconciler/core/database"
	"tree-reconciler/core/logger"
	"tree-reconciler/core/storage"
	"tree-reconciler/feature/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scenarioCmd is the parent command for stored scenario operations.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run, list and upload render scenarios kept in object storage",
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a stored scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := scenarioService()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		result, err := svc.RunScenario(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to run scenario %s: %w", args[0], err)
		}
		return printResult(cmd, l, result)
	},
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := scenarioService()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		names, err := svc.ListScenarios(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var scenarioPushCmd = &cobra.Command{
	Use:   "push <name> <file>",
	Short: "Validate a local scenario file and upload it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}
		svc, l, err := scenarioService()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := svc.SaveScenario(ctx, args[0], data); err != nil {
			return err
		}
		l.Info("Scenario uploaded", zap.String("scenario", args[0]))
		return nil
	},
}

func init() {
	scenarioCmd.PersistentFlags().BoolVar(&diffJSON, "json", false, "Print the full result as JSON")
	scenarioCmd.AddCommand(scenarioRunCmd, scenarioListCmd, scenarioPushCmd)
	RootCmd.AddCommand(scenarioCmd)
}

// scenarioService wires a render service to storage and, when enabled, the journal.
func scenarioService() (*render.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	var db *gorm.DB
	if cfg.Database.Enabled {
		if db, err = database.Connect(cfg.Database); err != nil {
			l.Warn("Run journal unavailable", zap.Error(err))
			db = nil
		}
	}

	return render.NewService(client, cfg.Storage.Bucket, l, db, cfg.Engine), l, nil
}

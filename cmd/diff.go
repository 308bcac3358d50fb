package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tree-reconciler/core/config"
	"tree-reconciler/core/logger"
	"tree-reconciler/core/vnode"
	"tree-reconciler/feature/render"
	"tree-reconciler/feature/render/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the diff command
	diffPrevPath string
	diffNextPath string
	diffJSON     bool
)

// diffCmd reconciles two local description files.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Reconcile two local tree files and report the effects",
	Long: `Reconcile the tree in --prev into the tree in --next using an in-memory host.

Files ending in .json are decoded as JSON, everything else as YAML.

Examples:
  # Render from scratch
  diff --next next.yaml

  # Full report as JSON
  diff --prev prev.yaml --next next.yaml --json`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffPrevPath, "prev", "", "Path to the currently rendered tree (optional)")
	diffCmd.Flags().StringVar(&diffNextPath, "next", "", "Path to the tree to render")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Print the full result as JSON")
	_ = diffCmd.MarkFlagRequired("next")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var prev *vnode.Node
	if diffPrevPath != "" {
		if prev, err = readTree(diffPrevPath); err != nil {
			return err
		}
	}
	next, err := readTree(diffNextPath)
	if err != nil {
		return err
	}

	// Local diffs need neither storage nor the journal
	svc := render.NewService(nil, "", l, nil, cfg.Engine)
	result, err := svc.Diff(context.Background(), prev, next, "")
	if err != nil {
		return fmt.Errorf("failed to diff: %w", err)
	}

	return printResult(cmd, l, result)
}

// readTree decodes a description file by extension.
func readTree(path string) (*vnode.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var n *vnode.Node
	if strings.EqualFold(filepath.Ext(path), ".json") {
		n, err = vnode.DecodeJSON(data)
	} else {
		n, err = vnode.DecodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return n, nil
}

// printResult writes the result as JSON or as a structured log report.
func printResult(cmd *cobra.Command, l *zap.Logger, r *models.DiffResult) error {
	if diffJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	s := r.Summary
	l.Info("Reconciliation report",
		zap.String("run_id", r.RunID),
		zap.String("scenario", r.Scenario),
		zap.Int("effects", s.Total),
		zap.Int("creates", s.Creates),
		zap.Int("moves", s.Moves),
		zap.Int("recycled", s.Recycled),
		zap.Int("updates", s.Updates),
		zap.Int("removes", s.Removes),
		zap.Int("replaces", s.Replaces),
		zap.Bool("converged", r.Converged),
		zap.String("execution_time", r.ExecutionTime),
	)

	// Show a sample of effects (max 10)
	maxShow := 10
	if len(r.Effects) < maxShow {
		maxShow = len(r.Effects)
	}
	for _, e := range r.Effects[:maxShow] {
		l.Info("Effect",
			zap.String("kind", e.Kind),
			zap.String("key", e.Key),
			zap.Int("index", e.Index),
			zap.Bool("moved", e.Moved),
			zap.Bool("recycled", e.Recycled),
		)
	}
	if len(r.Effects) > maxShow {
		l.Info("Additional effects not shown", zap.Int("count", len(r.Effects)-maxShow))
	}

	fmt.Fprintln(cmd.OutOrStdout(), r.After)
	return nil
}

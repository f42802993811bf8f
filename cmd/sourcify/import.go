package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// importRecord is one row of an HTS dataset export. Codes may arrive
// dotted ("6912.00.48.10") and rates may be empty.
type importRecord struct {
	Code        string `json:"htsno"`
	Description string `json:"description"`
	GeneralRate string `json:"general"`
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an HTS hierarchy dataset",
		Long: `Import a JSON export of the HTS hierarchy into the local database.

The file is a JSON array of records with "htsno", "description" and
"general" fields. Codes are normalized, levels and parents are derived
from code length, and existing codes are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Parse and validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse dataset: %w", err)
	}

	nodes, skipped, err := buildNodes(records)
	if err != nil {
		return err
	}

	slog.Info("dataset parsed",
		"records", len(records),
		"nodes", len(nodes),
		"skipped", skipped)

	if dryRun {
		slog.Info("dry run, nothing saved")
		return nil
	}

	raw, cached, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = raw.Close() }()
	defer cached.Close()

	bar := progressbar.Default(int64(len(nodes)), "importing")

	// Save in batches so the bar moves and a failure names its batch.
	const batchSize = 500
	for start := 0; start < len(nodes); start += batchSize {
		end := start + batchSize
		if end > len(nodes) {
			end = len(nodes)
		}
		if err := raw.SaveNodes(ctx, nodes[start:end]); err != nil {
			return fmt.Errorf("failed to save nodes %d-%d: %w", start, end, err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	count, err := raw.CountNodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count nodes: %w", err)
	}
	slog.Info("import complete", "total_nodes", count)
	return nil
}

// buildNodes normalizes dataset records into hierarchy nodes. Records
// with codes of unexpected length (group headers, notes) are skipped,
// not fatal.
func buildNodes(records []importRecord) ([]model.HtsNode, int, error) {
	nodes := make([]model.HtsNode, 0, len(records))
	skipped := 0
	for _, rec := range records {
		code := strings.ReplaceAll(strings.TrimSpace(rec.Code), ".", "")
		if !validCodeLength(code) {
			skipped++
			continue
		}
		node := model.HtsNode{
			Code:        code,
			Level:       model.LevelForCode(code),
			Description: strings.TrimSpace(rec.Description),
			ParentCode:  model.ParentCodeOf(code),
			GeneralRate: strings.TrimSpace(rec.GeneralRate),
		}
		if err := node.Validate(); err != nil {
			return nil, 0, fmt.Errorf("invalid record %q: %w", rec.Code, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, skipped, nil
}

func validCodeLength(code string) bool {
	switch len(code) {
	case 2, 4, 6, 8, 10:
		return true
	}
	return false
}

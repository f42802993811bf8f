package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrishsmith/sourcify-sub003/internal/cli"
	"github.com/chrishsmith/sourcify-sub003/internal/duty"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates <code>",
		Short: "Look up the duty rate for an HTS code",
		Long: `Look up the general duty rate for an HTS code, walking up the
hierarchy when the code itself carries no rate.`,
		Args: cobra.ExactArgs(1),
		RunE: runRates,
	}
}

func runRates(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	code := strings.ReplaceAll(strings.TrimSpace(args[0]), ".", "")

	raw, store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = raw.Close() }()
	defer store.Close()

	node, err := store.GetNode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up code: %w", err)
	}
	if node == nil {
		return fmt.Errorf("code %s not found in hierarchy", model.FormatCode(code))
	}

	rate, err := duty.NewResolver(store, slog.Default()).Resolve(ctx, node)
	if err != nil {
		return fmt.Errorf("failed to resolve duty rate: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", cli.CodeStyle.Render(model.FormatCode(node.Code)), node.Description)
	fmt.Fprintf(out, "%s %s", cli.BoldStyle.Render("General rate:"), rate.Normalized)
	if rate.InheritedFrom != "" {
		fmt.Fprintf(out, " %s", cli.SubtleStyle.Render("(inherited from "+model.FormatCode(rate.InheritedFrom)+")"))
	}
	fmt.Fprintln(out)
	return nil
}

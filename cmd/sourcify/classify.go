package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrishsmith/sourcify-sub003/internal/cli"
	"github.com/chrishsmith/sourcify-sub003/internal/engine"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
	"github.com/chrishsmith/sourcify-sub003/internal/tui"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a product description into an HTS code",
		Long: `Classify a free-text product description into a 10-digit HTS code.

When the pipeline cannot resolve an attribute it needs, clarifying
questions are printed instead of a code; answer them with repeated
--answer flags and rerun.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("material", "m", "", "Primary material of the product")
	cmd.Flags().StringP("use", "u", "", "Use context (household, commercial)")
	cmd.Flags().StringP("type", "t", "", "Product type noun (mug, bag, lamp)")
	cmd.Flags().StringSlice("answer", nil, "Answer to a prior question, as attribute=value")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for answers when clarification is needed")
	cmd.Flags().Bool("no-oracle", false, "Disable oracle consultation")

	_ = viper.BindPFlag("classify.no_oracle", cmd.Flags().Lookup("no-oracle"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := strings.Join(args, " ")

	material, _ := cmd.Flags().GetString("material")
	use, _ := cmd.Flags().GetString("use")
	productType, _ := cmd.Flags().GetString("type")
	answerFlags, _ := cmd.Flags().GetStringSlice("answer")

	answers := make(map[string]string)
	for _, a := range answerFlags {
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return fmt.Errorf("invalid answer %q, expected attribute=value", a)
		}
		answers[parts[0]] = parts[1]
	}

	raw, store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = raw.Close() }()
	defer store.Close()

	logger := slog.Default()

	var oracleClient service.Oracle
	if !viper.GetBool("classify.no_oracle") {
		oracleClient, err = initOracle(logger)
		if err != nil {
			return err
		}
	}

	eng, err := engine.New(store, oracleClient, engine.Options{
		OracleTimeout: viper.GetDuration("oracle.timeout"),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to build classification engine: %w", err)
	}

	req := engine.Request{
		Description: description,
		Material:    material,
		Use:         use,
		ProductType: productType,
		Answers:     answers,
	}

	result, err := eng.Classify(ctx, req)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if result.NeedsInput && interactive {
		prompted, promptErr := tui.AskQuestions(ctx, result.Questions)
		if promptErr != nil {
			if errors.Is(promptErr, tui.ErrPromptAborted) {
				fmt.Fprint(cmd.OutOrStdout(), cli.RenderResult(result))
				return nil
			}
			return promptErr
		}

		if req.Answers == nil {
			req.Answers = make(map[string]string)
		}
		for attr, value := range prompted {
			req.Answers[attr] = value
		}

		result, err = eng.Classify(ctx, req)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.RenderResult(result))
	return nil
}

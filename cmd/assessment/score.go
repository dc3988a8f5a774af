package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/observability"
	"github.com/jonathan/assessment-engine/internal/profile"
	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/jonathan/assessment-engine/internal/scoring"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file and infer its profile",
	Long: `Score a JSON array of {question_id, value} answers against a taxonomy's test
config, infer the dimension profile, and write {result, profile} JSON.`,
	RunE: runScore,
}

var (
	scoreTaxonomy    string
	scoreAnswersFile string
	scoreOutputFile  string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreTaxonomy, "taxonomy", "t", "", "Taxonomy to score against (required)")
	scoreCmd.Flags().StringVarP(&scoreAnswersFile, "answers", "a", "", "Path to answers JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	if err := scoreCmd.MarkFlagRequired("taxonomy"); err != nil {
		panic(fmt.Sprintf("failed to mark taxonomy flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("answers"); err != nil {
		panic(fmt.Sprintf("failed to mark answers flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	taxonomy, err := types.ParseTaxonomy(scoreTaxonomy)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(scoreAnswersFile)
	if err != nil {
		return fmt.Errorf("failed to read answers file: %w", err)
	}
	if err := schemas.Validate(schemas.Answers, data); err != nil {
		return fmt.Errorf("answers file does not validate against schema: %w", err)
	}

	var answers []types.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("failed to parse answers file: %w", err)
	}

	cfg, err := catalog.Get(taxonomy)
	if err != nil {
		return err
	}

	result, err := scoring.Score(answers, cfg)
	if err != nil {
		return fmt.Errorf("failed to score answers: %w", err)
	}
	prof, err := profile.InferResult(result)
	if err != nil {
		return fmt.Errorf("failed to infer profile: %w", err)
	}

	if err := checkScoreResult(result); err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(types.ScoreResponse{Result: result, Profile: prof}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if scoreOutputFile == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	} else {
		if err := os.WriteFile(scoreOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", scoreOutputFile)
	}

	if scoreVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintScoreResult(result)
		printer.PrintProfile(prof)
	}

	logger.Debug("scored answers",
		zap.String("taxonomy", string(taxonomy)),
		zap.Int("answers", len(answers)),
		zap.Int("insight_pairs", len(prof.InsightPairs)),
		zap.Int("risk_pairs", len(prof.RiskPairs)),
	)
	return nil
}

// checkScoreResult validates a result against the embedded schema. A failing
// document is an error; a schema that cannot be loaded only warns.
func checkScoreResult(result *types.ScoreResult) error {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal score result: %w", err)
	}

	if err := schemas.Validate(schemas.ScoreResult, resultBytes); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("score result does not validate against schema: %w", err)
		} else if errors.As(err, &schemaLoadErr) {
			logger.Warn("could not validate score result (schema loading failed)", zap.Error(err))
		} else {
			logger.Warn("could not validate score result", zap.Error(err))
		}
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/assignment"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a participant to a taxonomy",
	Long:  "Assign a participant to the least-filled eligible taxonomy, or print their existing assignment.",
	RunE:  runAssign,
}

var assignParticipant string

func init() {
	assignCmd.Flags().StringVar(&assignParticipant, "participant", "", "Participant UUID (required)")

	if err := assignCmd.MarkFlagRequired("participant"); err != nil {
		panic(fmt.Sprintf("failed to mark participant flag as required: %v", err))
	}

	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, _ []string) error {
	participantID, err := uuid.Parse(assignParticipant)
	if err != nil {
		return fmt.Errorf("invalid participant ID: %w", err)
	}

	ctx := cmd.Context()
	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	svc := assignment.NewService(database, assignment.NewAssigner(appConfig.CoreQuota), nil, logger)
	taxonomy, created, err := svc.Assign(ctx, participantID)
	if err != nil {
		return fmt.Errorf("failed to assign participant: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(types.AssignmentResponse{
		ParticipantID: participantID,
		Taxonomy:      taxonomy,
		Created:       created,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}

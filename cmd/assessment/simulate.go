package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/assignment"
	"github.com/jonathan/assessment-engine/internal/observability"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate balanced assignment in memory",
	Long: `Assign --n synthetic participants against an in-memory store and print the
final per-taxonomy counts. With --unlocked and --concurrency above 1,
assignments race on stale counts.`,
	RunE: runSimulate,
}

var (
	simulateN           int
	simulateQuota       int
	simulateSeed        uint64
	simulateConcurrency int
	simulateUnlocked    bool
)

func init() {
	simulateCmd.Flags().IntVar(&simulateN, "n", 200, "Number of participants to assign")
	simulateCmd.Flags().IntVar(&simulateQuota, "quota", 0, "Core quota (default from CORE_QUOTA or 50)")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "Seed for tie-breaking (0 picks a random seed)")
	simulateCmd.Flags().IntVar(&simulateConcurrency, "concurrency", 1, "Concurrent assignments")
	simulateCmd.Flags().BoolVar(&simulateUnlocked, "unlocked", false, "Skip the store's assignment lock")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if simulateN < 0 {
		return fmt.Errorf("--n must be non-negative")
	}

	quota := simulateQuota
	if quota <= 0 {
		quota = appConfig.CoreQuota
	}

	var opts []assignment.Option
	if simulateSeed != 0 {
		opts = append(opts, assignment.WithRand(rand.New(rand.NewPCG(simulateSeed, simulateSeed))))
	}
	assigner := assignment.NewAssigner(quota, opts...)

	memory := assignment.NewMemoryStore()
	var store assignment.Store = memory
	if simulateUnlocked {
		store = assignment.WithoutLock(memory)
	}
	svc := assignment.NewService(store, assigner, nil, logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(simulateConcurrency, 1))
	for i := 0; i < simulateN; i++ {
		g.Go(func() error {
			_, _, err := svc.Assign(ctx, uuid.New())
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	counts, err := memory.CountAssignments(cmd.Context())
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAssignmentCounts(counts, assigner.Quota())
	logger.Info("simulation complete",
		zap.Int("participants", simulateN),
		zap.Int("core_spread", spread(counts, types.CoreTaxonomies)),
		zap.Int("overall_spread", spread(counts, types.AllTaxonomies())),
	)
	return nil
}

// spread is the difference between the largest and smallest count in pool
func spread(counts map[types.Taxonomy]int, pool []types.Taxonomy) int {
	if len(pool) == 0 {
		return 0
	}
	lo, hi := counts[pool[0]], counts[pool[0]]
	for _, t := range pool[1:] {
		lo = min(lo, counts[t])
		hi = max(hi, counts[t])
	}
	return hi - lo
}

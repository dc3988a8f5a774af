package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// Service assigns participants through a Store. When the store implements
// Locker the read-decide-write sequence runs under its lock. Otherwise two
// concurrent first-time assignments may read the same counts and both land on
// the same taxonomy; later assignments even this out.
type Service struct {
	store    Store
	assigner *Assigner
	metrics  *Metrics
	logger   *zap.Logger
}

// NewService creates an assignment service. metrics and logger may be nil.
func NewService(store Store, assigner *Assigner, metrics *Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		assigner: assigner,
		metrics:  metrics,
		logger:   logger,
	}
}

// Assign returns the participant's taxonomy, choosing and recording one if the
// participant has none yet. created reports whether this call made the assignment.
func (s *Service) Assign(ctx context.Context, participantID uuid.UUID) (taxonomy types.Taxonomy, created bool, err error) {
	run := func(ctx context.Context, store Store) error {
		taxonomy, created, err = s.assign(ctx, store, participantID)
		return err
	}

	if locker, ok := s.store.(Locker); ok {
		err = locker.WithAssignmentLock(ctx, run)
	} else {
		err = run(ctx, s.store)
	}
	if err != nil {
		return "", false, err
	}
	return taxonomy, created, nil
}

// Get returns the participant's existing assignment.
func (s *Service) Get(ctx context.Context, participantID uuid.UUID) (types.Taxonomy, bool, error) {
	taxonomy, ok, err := s.store.GetAssignment(ctx, participantID)
	if err != nil {
		return "", false, &Error{Message: "failed to read assignment", Cause: err}
	}
	return taxonomy, ok, nil
}

func (s *Service) assign(ctx context.Context, store Store, participantID uuid.UUID) (types.Taxonomy, bool, error) {
	existing, ok, err := store.GetAssignment(ctx, participantID)
	if err != nil {
		return "", false, &Error{Message: "failed to read assignment", Cause: err}
	}
	if ok {
		return existing, false, nil
	}

	counts, err := store.CountAssignments(ctx)
	if err != nil {
		return "", false, &Error{Message: "failed to count assignments", Cause: err}
	}

	phase := s.assigner.Phase(counts)
	pool := s.assigner.Pool(counts)
	chosen := s.assigner.Choose(counts)
	if chosen == "" {
		return "", false, &Error{Message: "no taxonomy available for assignment"}
	}

	if err := store.RecordAssignment(ctx, participantID, chosen); err != nil {
		var already *AlreadyAssignedError
		if errors.As(err, &already) {
			// Lost a race for the same participant; the first write wins
			return already.Taxonomy, false, nil
		}
		return "", false, &Error{Message: "failed to record assignment", Cause: err}
	}

	s.metrics.observe(chosen, phase, len(pool))
	s.logger.Info("participant assigned",
		zap.String("participant_id", participantID.String()),
		zap.String("taxonomy", string(chosen)),
		zap.String("phase", string(phase)),
		zap.Int("pool_size", len(pool)),
		zap.Int("count_before", counts[chosen]),
	)

	return chosen, true, nil
}

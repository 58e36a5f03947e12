package usecases

import (
	"context"
	"time"

	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// SweepSessionsUseCase flips the stored active flag on sessions whose
// heartbeat fell out of the trailing window. Admission correctness never
// depends on the sweep; it keeps session listings honest.
type SweepSessionsUseCase struct {
	sessionRepo session.Repository
	sessionTTL  time.Duration
	logger      logger.Interface
}

func NewSweepSessionsUseCase(
	sessionRepo session.Repository,
	sessionTTL time.Duration,
	logger logger.Interface,
) *SweepSessionsUseCase {
	return &SweepSessionsUseCase{
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (uc *SweepSessionsUseCase) Execute(ctx context.Context) error {
	swept, err := uc.sessionRepo.DeactivateStale(ctx, uc.sessionTTL)
	if err != nil {
		uc.logger.Errorw("session sweep failed", "error", err)
		return err
	}
	if swept > 0 {
		uc.logger.Infow("stale sessions deactivated", "count", swept)
	}
	return nil
}

package usecase

import (
	"time"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

type trackerStateUseCase struct {
	trackerStateRepo domain.TrackerStateRepo
	ctxTimeout       time.Duration
}

func NewTrackerStateUseCase(r domain.TrackerStateRepo, ctxTimeout time.Duration) domain.TrackerStateUseCase {
	return &trackerStateUseCase{
		trackerStateRepo: r,
		ctxTimeout:       ctxTimeout,
	}
}

func (u *trackerStateUseCase) Get(c bCtx.Ctx, id *domain.TrackerStateId) (*domain.TrackerState, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.trackerStateRepo.Get(ctx, id)
}

// Update moves LastBlockProcessed forward only
func (u *trackerStateUseCase) Update(c bCtx.Ctx, state *domain.TrackerState) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	current, err := u.trackerStateRepo.Get(ctx, state.ToId())
	if err != nil {
		return err
	}
	if state.LastBlockProcessed < current.LastBlockProcessed {
		ctx.WithField("state", state).Warn("ignore tracker state rewind")
		return nil
	}
	return u.trackerStateRepo.Update(ctx, state)
}

func (u *trackerStateUseCase) Store(c bCtx.Ctx, state *domain.TrackerState) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.trackerStateRepo.Store(ctx, state)
}

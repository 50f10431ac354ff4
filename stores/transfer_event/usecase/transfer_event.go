package usecase

import (
	"time"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

type transferEventUseCase struct {
	transferEventRepo domain.TransferEventRepo
	ctxTimeout        time.Duration
}

func NewTransferEventUseCase(r domain.TransferEventRepo, ctxTimeout time.Duration) domain.TransferEventUseCase {
	return &transferEventUseCase{
		transferEventRepo: r,
		ctxTimeout:        ctxTimeout,
	}
}

// Store is idempotent, storing the same log twice keeps one copy
func (u *transferEventUseCase) Store(c bCtx.Ctx, e *domain.TransferEvent) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.transferEventRepo.Upsert(ctx, e)
}

func (u *transferEventUseCase) FindAll(c bCtx.Ctx, opts ...domain.TransferEventFindAllOptionsFunc) ([]*domain.TransferEvent, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.transferEventRepo.FindAll(ctx, opts...)
}

package repository

import (
	"time"

	"github.com/x-xyz/nfttransfer/base/ctx"
	hcdomain "github.com/x-xyz/nfttransfer/domain/healthcheck"
	"github.com/x-xyz/nfttransfer/service/query"
)

const pingTimeout = 2 * time.Second

// BlockNumberGetter is the ledger node being checked
type BlockNumberGetter interface {
	BlockNumber(ctx.Ctx) (uint64, error)
}

type ledgerRepo struct {
	ledger BlockNumberGetter
}

// NewLedgerRepo checks the node answers eth_blockNumber
func NewLedgerRepo(ledger BlockNumberGetter) hcdomain.HealthCheckRepo {
	return &ledgerRepo{ledger: ledger}
}

func (im *ledgerRepo) Ping(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if _, err := im.ledger.BlockNumber(ctx); err != nil {
		context.WithField("err", err).Error("ping ledger error")
		return err
	}
	return nil
}

type mongoRepo struct {
	q query.Mongo
}

func NewMongoRepo(q query.Mongo) hcdomain.HealthCheckRepo {
	return &mongoRepo{q: q}
}

func (im *mongoRepo) Ping(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.q.Ping(ctx); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

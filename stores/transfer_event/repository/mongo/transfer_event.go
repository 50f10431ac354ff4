package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/query"
)

type transferEventMongoRepo struct {
	m query.Mongo
}

func NewTransferEventMongoRepo(mCon query.Mongo) domain.TransferEventRepo {
	return &transferEventMongoRepo{m: mCon}
}

// EnsureIndexes creates the event key and the scan order index
func EnsureIndexes(c bCtx.Ctx, mCon query.Mongo) error {
	return mCon.EnsureIndexes(c, domain.TableTransferEvents,
		query.Index{Keys: []string{"chainId", "contractAddress", "txHash", "logIndex"}, Unique: true},
		query.Index{Keys: []string{"chainId", "contractAddress", "event", "blockNumber", "logIndex"}},
	)
}

func (r *transferEventMongoRepo) Upsert(c bCtx.Ctx, e *domain.TransferEvent) error {
	// ToSelector would drop a zero log index
	id := e.ToId()
	selector := bson.M{
		"chainId":         id.ChainId,
		"contractAddress": id.ContractAddress,
		"txHash":          id.TxHash,
		"logIndex":        id.LogIndex,
	}
	if err := r.m.Upsert(c, domain.TableTransferEvents, selector, e); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  e.ToId(),
		}).Error("m.Upsert failed")
		return err
	}
	return nil
}

func (r *transferEventMongoRepo) FindAll(c bCtx.Ctx, optFns ...domain.TransferEventFindAllOptionsFunc) ([]*domain.TransferEvent, error) {
	opts, err := domain.GetTransferEventFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetTransferEventFindAllOptions failed")
		return nil, err
	}
	qry := makeQuery(opts)

	res := []*domain.TransferEvent{}
	if err := r.m.SearchNSorts(c, domain.TableTransferEvents, 0, 0, []string{"blockNumber", "logIndex"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("m.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func makeQuery(opts domain.TransferEventFindAllOptions) bson.M {
	qry := bson.M{}
	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}
	if opts.ContractAddress != nil {
		qry["contractAddress"] = *opts.ContractAddress
	}
	if opts.Event != nil {
		qry["event"] = *opts.Event
	}
	blockRange := bson.M{}
	if opts.FromBlock != nil {
		blockRange["$gte"] = *opts.FromBlock
	}
	if opts.ToBlock != nil {
		blockRange["$lte"] = *opts.ToBlock
	}
	if len(blockRange) > 0 {
		qry["blockNumber"] = blockRange
	}
	return qry
}

package source

import (
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

type IndexedEventSourceCfg struct {
	UseCase  domain.TransferEventUseCase
	ChainId  domain.ChainId
	Contract domain.Address
}

type indexedEventSource struct {
	usecase  domain.TransferEventUseCase
	chainId  domain.ChainId
	contract domain.Address
}

// NewIndexedEventSource serves past events from the indexer's collection.
// Blocks the indexer has not reached yet are missing from the result.
func NewIndexedEventSource(cfg *IndexedEventSourceCfg) domain.EventSource {
	return &indexedEventSource{
		usecase:  cfg.UseCase,
		chainId:  cfg.ChainId,
		contract: domain.ToAddress(cfg.Contract.ToCommon()),
	}
}

func (s *indexedEventSource) GetPastEvents(c bCtx.Ctx, eventName string, r domain.BlockRange) ([]*domain.LedgerEvent, error) {
	stored, err := s.usecase.FindAll(c,
		domain.TransferEventWithChainId(s.chainId),
		domain.TransferEventWithContract(s.contract),
		domain.TransferEventWithEvent(eventName),
		domain.TransferEventWithBlockRange(r),
	)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": eventName,
			"range": r.String(),
		}).Error("usecase.FindAll failed")
		return nil, err
	}
	events := make([]*domain.LedgerEvent, 0, len(stored))
	for _, e := range stored {
		events = append(events, e.ToLedgerEvent())
	}
	return events, nil
}

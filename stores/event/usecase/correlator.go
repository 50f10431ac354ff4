package usecase

import (
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/metrics"
	"github.com/x-xyz/nfttransfer/domain"
)

type CorrelatorCfg struct {
	Source domain.EventSource
}

type correlator struct {
	source domain.EventSource
	met    metrics.Service
}

func NewCorrelator(cfg *CorrelatorCfg) domain.EventCorrelator {
	return &correlator{
		source: cfg.Source,
		met:    metrics.New("correlator"),
	}
}

// FindEvent scans every past eventName event in the order the source delivers
// them and returns the first one filter matches. No match is nil without error.
func (u *correlator) FindEvent(c bCtx.Ctx, eventName string, filter domain.EventFilter) (*domain.LedgerEvent, error) {
	defer u.met.BumpTime("scan.time", "event", eventName).End()

	events, err := u.source.GetPastEvents(c, eventName, domain.FullRange())
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": eventName,
		}).Error("source.GetPastEvents failed")
		return nil, err
	}
	u.met.BumpHistogram("scan.events", float64(len(events)), "event", eventName)

	for _, e := range events {
		if filter.Matches(e) {
			c.WithFields(log.Fields{
				"event":   eventName,
				"block":   e.BlockNumber,
				"txHash":  e.TransactionHash,
				"scanned": len(events),
			}).Info("event matched")
			return e, nil
		}
	}
	c.WithFields(log.Fields{
		"event":   eventName,
		"filter":  filter,
		"scanned": len(events),
	}).Info("no event matched")
	return nil, nil
}

package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

const (
	defaultChunkSize   = 5000
	TooManyLogsTimeout = 30 * time.Second
)

// blockSource is the part of domain.LedgerClient a chunked scan needs
type blockSource interface {
	domain.EventSource
	BlockNumber(c bCtx.Ctx) (uint64, error)
}

type ChunkedEventSourceCfg struct {
	Source    blockSource
	ChunkSize uint64
	// WindowTimeout bounds one window query, a slow window is bisected
	WindowTimeout time.Duration
}

type chunkedEventSource struct {
	source        blockSource
	chunkSize     uint64
	windowTimeout time.Duration
}

// NewChunkedEventSource walks a range in windows of ChunkSize blocks. A window
// the node refuses is split in halves until it is a single block. Events are
// returned in block order.
func NewChunkedEventSource(cfg *ChunkedEventSourceCfg) domain.EventSource {
	s := &chunkedEventSource{
		source:        cfg.Source,
		chunkSize:     cfg.ChunkSize,
		windowTimeout: cfg.WindowTimeout,
	}
	if s.chunkSize == 0 {
		s.chunkSize = defaultChunkSize
	}
	if s.windowTimeout <= 0 {
		s.windowTimeout = TooManyLogsTimeout
	}
	return s
}

func (s *chunkedEventSource) GetPastEvents(c bCtx.Ctx, eventName string, r domain.BlockRange) ([]*domain.LedgerEvent, error) {
	var end uint64
	if r.To != nil {
		end = *r.To
	} else {
		latest, err := s.source.BlockNumber(c)
		if err != nil {
			c.WithField("err", err).Error("source.BlockNumber failed")
			return nil, err
		}
		end = latest
	}

	events := []*domain.LedgerEvent{}
	if r.From > end {
		return events, nil
	}
	for start := r.From; ; {
		windowEnd := end
		if end-start >= s.chunkSize {
			windowEnd = start + s.chunkSize - 1
		}
		evs, err := s.processBlkRange(c, eventName, newBlockRange(start, windowEnd))
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
		if windowEnd == end {
			break
		}
		start = windowEnd + 1
	}
	return events, nil
}

func (s *chunkedEventSource) processBlkRange(c bCtx.Ctx, eventName string, blkRange *blockRange) ([]*domain.LedgerEvent, error) {
	events := []*domain.LedgerEvent{}
	ranges := []*blockRange{blkRange}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]

		tCtx, cancel := bCtx.WithTimeout(c, s.windowTimeout)
		evs, err := s.source.GetPastEvents(tCtx, eventName, r.toDomain())
		cancel()
		if err != nil {
			if r.single() || !refused(c, err) {
				c.WithFields(log.Fields{
					"err":   err,
					"range": r.String(),
				}).Error("failed to get events")
				return nil, err
			}
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			c.WithFields(log.Fields{
				"originalRange": r.String(),
				"range1":        r1.String(),
				"range2":        r2.String(),
			}).Info("splitting blockRange")
			continue
		}
		events = append(events, evs...)
	}
	return events, nil
}

// refused is a node-side limit: a JSON-RPC error or the window timing out
// while the caller is still waiting
func refused(c bCtx.Ctx, err error) bool {
	if c.Err() != nil {
		return false
	}
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) || errors.Is(err, context.DeadlineExceeded)
}

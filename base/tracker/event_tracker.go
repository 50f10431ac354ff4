package tracker

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/metrics"
	"github.com/x-xyz/nfttransfer/domain"
)

var metOnce sync.Once
var met metrics.Service

type CurrentBlockProvider interface {
	BlockNumber(bCtx.Ctx) (uint64, error)
}

// CodeProvider is the archive node used to find where the contract was deployed
type CodeProvider interface {
	BlockNumber(context.Context) (uint64, error)
	CodeAt(context.Context, common.Address, *big.Int) ([]byte, error)
}

const defaultInterval = 15 * time.Second

type EventTrackerCfg struct {
	ChainId    domain.ChainId
	Contract   domain.Address
	EventName  string
	TrackerTag string

	// Source is walked over [lastBlockProcessed+1, head-FollowDistance] every Interval
	Source             domain.EventSource
	CurrentBlockGetter CurrentBlockProvider
	// ClientWithArchive is only needed when StartBlock is 0 and no state was stored yet
	ClientWithArchive CodeProvider

	TrackerStateUseCase  domain.TrackerStateUseCase
	TransferEventUseCase domain.TransferEventUseCase

	Interval       time.Duration
	FollowDistance uint64
	StartBlock     uint64
	ErrorCh        chan<- error
}

// EventTracker copies the contract's events into the transfer event store
type EventTracker struct {
	chainId              domain.ChainId
	contract             domain.Address
	eventName            string
	trackerTag           string
	source               domain.EventSource
	currentBlockGetter   CurrentBlockProvider
	clientWithArchive    CodeProvider
	trackerStateUseCase  domain.TrackerStateUseCase
	transferEventUseCase domain.TransferEventUseCase
	interval             time.Duration
	followDistance       uint64
	startBlock           uint64
	errorCh              chan<- error
	trackerState         *domain.TrackerState
	// genesisDone is set once block 0 has been walked by this tracker
	genesisDone          bool
	stoppedCh            chan interface{}
}

func NewEventTracker(cfg *EventTrackerCfg) (*EventTracker, error) {
	metOnce.Do(func() {
		met = metrics.New("tracker")
	})
	if !cfg.Contract.IsValid() {
		return nil, xerrors.Errorf("config error: contract %q: %w", cfg.Contract, domain.ErrInvalidAddress)
	}
	if cfg.StartBlock == 0 && cfg.ClientWithArchive == nil {
		return nil, errors.New("config error: ClientWithArchive is required without StartBlock")
	}
	eventName := cfg.EventName
	if eventName == "" {
		eventName = domain.EventTransfer
	}
	tag := cfg.TrackerTag
	if tag == "" {
		tag = domain.DefaultTag
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &EventTracker{
		chainId:              cfg.ChainId,
		contract:             domain.ToAddress(cfg.Contract.ToCommon()),
		eventName:            eventName,
		trackerTag:           tag,
		source:               cfg.Source,
		currentBlockGetter:   cfg.CurrentBlockGetter,
		clientWithArchive:    cfg.ClientWithArchive,
		trackerStateUseCase:  cfg.TrackerStateUseCase,
		transferEventUseCase: cfg.TransferEventUseCase,
		interval:             interval,
		followDistance:       cfg.FollowDistance,
		startBlock:           cfg.StartBlock,
		errorCh:              cfg.ErrorCh,
		stoppedCh:            make(chan interface{}),
	}, nil
}

func (f *EventTracker) Start(ctx bCtx.Ctx) {
	go func() {
		defer close(f.stoppedCh)
		if err := f.loop(ctx); err != nil && f.errorCh != nil {
			f.errorCh <- err
		}
	}()
}

func (f *EventTracker) Wait() {
	<-f.stoppedCh
}

func (f *EventTracker) loop(ctx bCtx.Ctx) error {
	state, err := f.setupTrackerState(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("setupTrackerState failed")
		return err
	}
	f.trackerState = state

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		if err := f.step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ctx.WithFields(log.Fields{
				"err":      err,
				"chainId":  f.chainId,
				"contract": f.contract,
			}).Error("f.step failed")
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// step indexes everything between the last processed block and the followed head
func (f *EventTracker) step(ctx bCtx.Ctx) error {
	current, err := f.currentBlockGetter.BlockNumber(ctx)
	if err != nil {
		return err
	}
	met.BumpAvg("blockchain.lastBlock", float64(current), "chainId", fmt.Sprint(f.chainId))
	if current < f.followDistance {
		return nil
	}
	target := current - f.followDistance
	start := f.trackerState.LastBlockProcessed + 1
	if f.trackerState.LastBlockProcessed == 0 && f.startBlock == 0 && !f.genesisDone {
		start = 0
	}
	if target < start {
		return nil
	}

	n, err := f.processBlkRange(ctx, start, target)
	if err != nil {
		return err
	}
	f.genesisDone = true
	ctx.Info(fmt.Sprintf("process block range start=%d end=%d events=%d contract=%s", start, target, n, f.contract))
	met.BumpAvg("contract.lastBlock", float64(target), "chainId", fmt.Sprint(f.chainId), "contract", string(f.contract))
	return nil
}

func (f *EventTracker) processBlkRange(ctx bCtx.Ctx, start, end uint64) (int, error) {
	r := domain.BlockRange{From: start, To: &end}
	events, err := f.source.GetPastEvents(ctx, f.eventName, r)
	if err != nil {
		return 0, xerrors.Errorf("failed to get events in %s: %w", r, err)
	}
	stored := 0
	for _, e := range events {
		if e.Removed {
			continue
		}
		if err := f.transferEventUseCase.Store(ctx, domain.NewTransferEvent(f.chainId, e)); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"txHash":  e.TransactionHash,
				"logIdx":  e.LogIndex,
				"blockNo": e.BlockNumber,
			}).Error("transferEventUseCase.Store failed")
			return stored, xerrors.Errorf("failed to store event: %w", err)
		}
		stored++
	}
	met.BumpSum("events.stored", float64(stored), "chainId", fmt.Sprint(f.chainId))

	f.trackerState.LastBlockProcessed = end
	if err := f.trackerStateUseCase.Update(ctx, f.trackerState); err != nil {
		return stored, xerrors.Errorf("failed to store tracker state: %w", err)
	}
	return stored, nil
}

func (f *EventTracker) setupTrackerState(ctx bCtx.Ctx) (*domain.TrackerState, error) {
	id := &domain.TrackerStateId{
		ChainId:         f.chainId,
		ContractAddress: f.contract,
		Tag:             f.trackerTag,
	}
	state, err := f.trackerStateUseCase.Get(ctx, id)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		// repo error
		return nil, err
	}

	first := f.startBlock
	if first == 0 {
		deployedBlk, err := getDeployedBlock(ctx, f.clientWithArchive, f.contract.ToCommon())
		if err != nil {
			ctx.WithFields(log.Fields{
				"chainId":  f.chainId,
				"contract": f.contract,
				"tag":      f.trackerTag,
				"err":      err,
			}).Error("failed to get deployed block")
			return nil, err
		}
		ctx.WithFields(log.Fields{
			"chainId":       f.chainId,
			"contract":      f.contract,
			"deployedBlock": deployedBlk,
		}).Info("got deployedBlock")
		first = deployedBlk
	}
	// nothing before first can hold events of the contract
	last := uint64(0)
	if first > 0 {
		last = first - 1
	}
	state = &domain.TrackerState{
		ChainId:            f.chainId,
		ContractAddress:    f.contract,
		Tag:                f.trackerTag,
		LastBlockProcessed: last,
	}
	if err := f.trackerStateUseCase.Store(ctx, state); err != nil {
		ctx.WithFields(log.Fields{
			"chainId":  f.chainId,
			"contract": f.contract,
			"tag":      f.trackerTag,
			"err":      err,
		}).Error("failed to store tracker state")
		return nil, err
	}
	return state, nil
}

// getDeployedBlock binary searches the first block where addr has code
func getDeployedBlock(ctx bCtx.Ctx, c CodeProvider, addr common.Address) (uint64, error) {
	blk, err := c.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}
	l := blk
	s := blk
	for l > 0 {
		step := l / 2
		mid := s - step - 1
		b, err := c.CodeAt(ctx, addr, new(big.Int).SetUint64(mid))
		if err != nil {
			return 0, err
		}
		if len(b) > 0 {
			s = mid
			l -= step + 1
		} else {
			l = step
		}
	}
	return s, nil
}

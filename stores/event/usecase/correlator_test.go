package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

const (
	contract = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	alice    = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	bob      = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
)

func transfer(from, to domain.Address, tokenId string, block uint64) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		Event:   domain.EventTransfer,
		Address: contract,
		ReturnValues: map[string]domain.EventValue{
			"from":    domain.AddressValue(from),
			"to":      domain.AddressValue(to),
			"tokenId": domain.StringValue(tokenId),
		},
		BlockNumber: domain.BlockNumber(block),
	}
}

type correlatorSuite struct {
	suite.Suite
	ctx    bCtx.Ctx
	source *mocks.EventSource
	im     domain.EventCorrelator
}

func (s *correlatorSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.source = &mocks.EventSource{}
	s.im = NewCorrelator(&CorrelatorCfg{Source: s.source})
}

func (s *correlatorSuite) TearDownTest() {
	s.source.AssertExpectations(s.T())
}

func (s *correlatorSuite) onEvents(events []*domain.LedgerEvent, err error) {
	s.source.On("GetPastEvents", mock.Anything, domain.EventTransfer, domain.FullRange()).Return(events, err).Once()
}

func (s *correlatorSuite) TestFirstMatchWins() {
	first := transfer(contract, bob, "1", 10)
	second := transfer(contract, bob, "2", 20)
	s.onEvents([]*domain.LedgerEvent{transfer(contract, alice, "3", 5), first, second}, nil)

	e, err := s.im.FindEvent(s.ctx, domain.EventTransfer, domain.TransferFilter(contract, bob))
	s.Require().NoError(err)
	s.Same(first, e)
}

func (s *correlatorSuite) TestNoMatchIsNil() {
	s.onEvents([]*domain.LedgerEvent{transfer(alice, bob, "1", 10)}, nil)

	e, err := s.im.FindEvent(s.ctx, domain.EventTransfer, domain.TransferFilter(contract, bob))
	s.NoError(err)
	s.Nil(e)
}

func (s *correlatorSuite) TestEmptyHistory() {
	s.onEvents([]*domain.LedgerEvent{}, nil)

	e, err := s.im.FindEvent(s.ctx, domain.EventTransfer, domain.EventFilter{})
	s.NoError(err)
	s.Nil(e)
}

func (s *correlatorSuite) TestEmptyFilterMatchesFirstWithValues() {
	noValues := &domain.LedgerEvent{Event: domain.EventTransfer}
	withValues := transfer(alice, bob, "1", 3)
	s.onEvents([]*domain.LedgerEvent{noValues, withValues}, nil)

	e, err := s.im.FindEvent(s.ctx, domain.EventTransfer, domain.EventFilter{})
	s.NoError(err)
	s.Same(withValues, e)
}

func (s *correlatorSuite) TestSourceErrorPropagates() {
	boom := &domain.TransportError{Op: "eth_getLogs", Err: errors.New("connection reset")}
	s.onEvents(nil, boom)

	e, err := s.im.FindEvent(s.ctx, domain.EventTransfer, domain.TransferFilter(contract, bob))
	s.Nil(e)
	s.Equal(boom, err)
}

func TestCorrelatorSuite(t *testing.T) {
	suite.Run(t, new(correlatorSuite))
}

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

func rng(from, to uint64) domain.BlockRange {
	return domain.BlockRange{From: from, To: &to}
}

func ev(block uint64) *domain.LedgerEvent {
	return &domain.LedgerEvent{Event: domain.EventTransfer, BlockNumber: domain.BlockNumber(block), ReturnValues: map[string]domain.EventValue{}}
}

func TestChunkedEventSource_windowsAndSplit(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()
	src := &mocks.LedgerClient{}
	tooMany := &jsonError{code: -32005, msg: "query returned more than 10000 results"}

	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(0, 4)).Return([]*domain.LedgerEvent{ev(1), ev(4)}, nil).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(5, 9)).Return(nil, &domain.TransportError{Op: opGetLogs, Err: tooMany}).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(5, 7)).Return([]*domain.LedgerEvent{ev(6)}, nil).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(8, 9)).Return([]*domain.LedgerEvent{ev(9)}, nil).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(10, 11)).Return([]*domain.LedgerEvent{}, nil).Once()

	s := NewChunkedEventSource(&ChunkedEventSourceCfg{Source: src, ChunkSize: 5})
	events, err := s.GetPastEvents(c, domain.EventTransfer, rng(0, 11))
	req.NoError(err)
	req.Equal([]*domain.LedgerEvent{ev(1), ev(4), ev(6), ev(9)}, events)
	src.AssertExpectations(t)
}

func TestChunkedEventSource_latest(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()
	src := &mocks.LedgerClient{}
	src.On("BlockNumber", mock.Anything).Return(uint64(3), nil).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(0, 3)).Return([]*domain.LedgerEvent{ev(2)}, nil).Once()

	s := NewChunkedEventSource(&ChunkedEventSourceCfg{Source: src, ChunkSize: 100})
	events, err := s.GetPastEvents(c, domain.EventTransfer, domain.FullRange())
	req.NoError(err)
	req.Equal([]*domain.LedgerEvent{ev(2)}, events)
	src.AssertExpectations(t)
}

func TestChunkedEventSource_emptyRange(t *testing.T) {
	src := &mocks.LedgerClient{}
	s := NewChunkedEventSource(&ChunkedEventSourceCfg{Source: src})
	events, err := s.GetPastEvents(bCtx.Background(), domain.EventTransfer, rng(10, 3))
	require.NoError(t, err)
	require.Empty(t, events)
	src.AssertNotCalled(t, "GetPastEvents", mock.Anything, mock.Anything, mock.Anything)
}

func TestChunkedEventSource_errors(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	// connection errors are not split
	src := &mocks.LedgerClient{}
	down := &domain.TransportError{Op: opGetLogs, Err: errors.New("connection refused")}
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(0, 9)).Return(nil, down).Once()
	_, err := NewChunkedEventSource(&ChunkedEventSourceCfg{Source: src, ChunkSize: 10}).GetPastEvents(c, domain.EventTransfer, rng(0, 9))
	req.Equal(down, err)
	src.AssertExpectations(t)

	// a single block that is still refused fails
	src = &mocks.LedgerClient{}
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(0, 1)).Return(nil, context.DeadlineExceeded).Once()
	src.On("GetPastEvents", mock.Anything, domain.EventTransfer, rng(0, 0)).Return(nil, context.DeadlineExceeded).Once()
	_, err = NewChunkedEventSource(&ChunkedEventSourceCfg{Source: src, ChunkSize: 10}).GetPastEvents(c, domain.EventTransfer, rng(0, 1))
	req.ErrorIs(err, context.DeadlineExceeded)
	src.AssertExpectations(t)
}

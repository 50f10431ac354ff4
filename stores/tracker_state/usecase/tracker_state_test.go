package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

func TestUpdate_forwardOnly(t *testing.T) {
	req := require.New(t)
	repo := &mocks.TrackerStateRepo{}
	u := NewTrackerStateUseCase(repo, time.Second)
	ctx := bCtx.Background()

	current := &domain.TrackerState{ChainId: 5, ContractAddress: "0xdcf0de6b17785a143d006e1515a6afd123cde8ba", Tag: domain.DefaultTag, LastBlockProcessed: 100}
	repo.On("Get", mock.Anything, current.ToId()).Return(current, nil)

	older := *current
	older.LastBlockProcessed = 90
	req.NoError(u.Update(ctx, &older))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	newer := *current
	newer.LastBlockProcessed = 120
	repo.On("Update", mock.Anything, &newer).Return(nil).Once()
	req.NoError(u.Update(ctx, &newer))
	repo.AssertExpectations(t)
}

func TestUpdate_missingState(t *testing.T) {
	repo := &mocks.TrackerStateRepo{}
	u := NewTrackerStateUseCase(repo, time.Second)
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	require.ErrorIs(t, u.Update(bCtx.Background(), &domain.TrackerState{}), domain.ErrNotFound)
}

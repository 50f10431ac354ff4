package usecase

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bAbi "github.com/x-xyz/nfttransfer/base/abi"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/delivery"
	bEth "github.com/x-xyz/nfttransfer/base/ethereum"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

const (
	contract  = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	recipient = domain.Address("0x94EaD797046c7b654cab82C1c27ad223b6501f1f")
)

var chainId = big.NewInt(5)

func outcomeCh(outcomes ...domain.SubmissionOutcome) <-chan domain.SubmissionOutcome {
	ch := make(chan domain.SubmissionOutcome, len(outcomes))
	for _, o := range outcomes {
		ch <- o
	}
	close(ch)
	return ch
}

type transferSuite struct {
	suite.Suite
	ctx        bCtx.Ctx
	ledger     *mocks.LedgerClient
	correlator *mocks.EventCorrelator
	cred       *bEth.KeyCredential
	im         domain.TransferUseCase
}

func (s *transferSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.ledger = &mocks.LedgerClient{}
	s.correlator = &mocks.EventCorrelator{}
	key, _, err := bEth.GenerateKey()
	s.Require().NoError(err)
	s.cred = bEth.NewKeyCredential(key)
	s.im = New(&TransferUseCaseCfg{
		Ledger:     s.ledger,
		Correlator: s.correlator,
		Credential: s.cred,
		Contract:   contract,
	})
}

func (s *transferSuite) TearDownTest() {
	s.ledger.AssertExpectations(s.T())
	s.correlator.AssertExpectations(s.T())
}

func (s *transferSuite) signWith(cred domain.Credential, env *domain.TransactionEnvelope) *domain.SignedTransaction {
	to := env.To
	tx, err := cred.SignTx(types.NewTx(&types.LegacyTx{To: &to, Gas: env.GasLimit, GasPrice: big.NewInt(1), Data: env.Data}), chainId)
	s.Require().NoError(err)
	return &domain.SignedTransaction{Envelope: env, Tx: tx, ChainId: chainId}
}

// onSign signs the envelope it is handed with cred, or with the suite's credential when cred is nil
func (s *transferSuite) onSign(cred domain.Credential) {
	if cred == nil {
		cred = s.cred
	}
	s.ledger.On("SignTransaction", mock.Anything, mock.Anything, s.cred).Return(
		func(_ bCtx.Ctx, env *domain.TransactionEnvelope, _ domain.Credential) *domain.SignedTransaction {
			return s.signWith(cred, env)
		},
		nil,
	).Once()
}

func (s *transferSuite) expectedEnvelope(assetId int64) *domain.TransactionEnvelope {
	data, err := bAbi.PackTransferFrom(s.cred.Address(), recipient.ToCommon(), big.NewInt(assetId))
	s.Require().NoError(err)
	return &domain.TransactionEnvelope{
		Sender:   s.cred.Address(),
		To:       contract.ToCommon(),
		GasLimit: DefaultGasLimit,
		Data:     data,
	}
}

func (s *transferSuite) confirmingEvent() *domain.LedgerEvent {
	return &domain.LedgerEvent{
		Event:   domain.EventTransfer,
		Address: contract,
		ReturnValues: map[string]domain.EventValue{
			"from":    domain.AddressValue(contract),
			"to":      domain.AddressValue(recipient),
			"tokenId": "42",
		},
		BlockNumber: 100,
	}
}

func (s *transferSuite) TestConfirmed() {
	env := s.expectedEnvelope(42)
	s.ledger.On("SignTransaction", mock.Anything, env, s.cred).Return(s.signWith(s.cred, env), nil).Once()
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Receipt: &types.Receipt{Status: 1}})).Once()
	event := s.confirmingEvent()
	s.correlator.On("FindEvent", mock.Anything, domain.EventTransfer, domain.TransferFilter(contract, recipient)).Return(event, nil).Once()

	got, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.Require().NoError(err)
	s.Same(event, got)
}

func (s *transferSuite) TestIncludedWithoutMatch() {
	s.onSign(nil)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Receipt: &types.Receipt{Status: 1}})).Once()
	s.correlator.On("FindEvent", mock.Anything, domain.EventTransfer, mock.Anything).Return(nil, nil).Once()

	got, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.NoError(err)
	s.Nil(got)
}

func (s *transferSuite) TestSubmissionRejected() {
	s.onSign(nil)
	reverted := &domain.SubmissionError{Reason: "reverted: ERC721: transfer of token that is not own"}
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Err: reverted})).Once()

	got, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.Nil(got)
	s.Equal(reverted, err)
	s.Equal(`"reverted: ERC721: transfer of token that is not own"`, domain.SerializeRejection(err))
	s.correlator.AssertNotCalled(s.T(), "FindEvent", mock.Anything, mock.Anything, mock.Anything)
}

func (s *transferSuite) TestTransportFailure() {
	s.onSign(nil)
	down := &domain.TransportError{Op: "eth_sendRawTransaction", Err: errors.New("connection refused")}
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Err: down})).Once()

	_, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.Equal(down, err)
}

func (s *transferSuite) TestSigningFailureSubmitsNothing() {
	s.ledger.On("SignTransaction", mock.Anything, mock.Anything, s.cred).Return(nil, errors.New("nonce unavailable")).Once()

	_, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	var signErr *domain.SigningError
	s.Require().ErrorAs(err, &signErr)
	s.ledger.AssertNotCalled(s.T(), "SendSignedTransaction", mock.Anything, mock.Anything)
}

func (s *transferSuite) TestSigningUnreachableNodeKeepsTransportError() {
	nodeErr := &domain.TransportError{Op: "eth_getTransactionCount", Err: errors.New("connection refused")}
	s.ledger.On("SignTransaction", mock.Anything, mock.Anything, s.cred).Return(nil, nodeErr).Once()

	_, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.Require().Same(nodeErr, err)
	var signErr *domain.SigningError
	s.False(errors.As(err, &signErr))
	s.Equal(http.StatusBadGateway, delivery.ErrorStatus(err, http.StatusInternalServerError))
	s.Equal(`"eth_getTransactionCount: connection refused"`, domain.SerializeRejection(err))
	s.ledger.AssertNotCalled(s.T(), "SendSignedTransaction", mock.Anything, mock.Anything)
}

func (s *transferSuite) TestSignerMismatchSubmitsNothing() {
	key, _, err := bEth.GenerateKey()
	s.Require().NoError(err)
	s.onSign(bEth.NewKeyCredential(key))

	_, err = s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.ErrorIs(err, domain.ErrSignerMismatch)
	s.ledger.AssertNotCalled(s.T(), "SendSignedTransaction", mock.Anything, mock.Anything)
}

func (s *transferSuite) TestNilCredential() {
	im := New(&TransferUseCaseCfg{
		Ledger:     s.ledger,
		Correlator: s.correlator,
		Contract:   contract,
		Owner:      domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"),
	})
	_, err := im.Transfer(s.ctx, recipient, big.NewInt(1))
	s.ErrorIs(err, domain.ErrNilCredential)
	s.ledger.AssertNotCalled(s.T(), "SignTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *transferSuite) TestShapeChecks() {
	_, err := s.im.Transfer(s.ctx, domain.Address("0x1234"), big.NewInt(1))
	s.ErrorIs(err, domain.ErrInvalidAddress)

	_, err = s.im.Transfer(s.ctx, recipient, big.NewInt(-1))
	s.ErrorIs(err, domain.ErrInvalidAssetId)

	_, err = s.im.Transfer(s.ctx, recipient, nil)
	s.ErrorIs(err, domain.ErrInvalidAssetId)
}

func (s *transferSuite) TestWaitTimeout() {
	im := New(&TransferUseCaseCfg{
		Ledger:      s.ledger,
		Correlator:  s.correlator,
		Credential:  s.cred,
		Contract:    contract,
		WaitTimeout: 10 * time.Millisecond,
	})
	s.onSign(nil)
	var pending <-chan domain.SubmissionOutcome = make(chan domain.SubmissionOutcome)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(pending).Once()

	_, err := im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.ErrorIs(err, domain.ErrWaitTimeout)
}

func (s *transferSuite) TestCallerCanceled() {
	c, cancel := bCtx.WithCancel(s.ctx)
	s.onSign(nil)
	var pending <-chan domain.SubmissionOutcome = make(chan domain.SubmissionOutcome)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		cancel()
	}).Return(pending).Once()

	_, err := s.im.Transfer(c, recipient, big.NewInt(42))
	s.ErrorIs(err, context.Canceled)
}

func (s *transferSuite) TestOutcomeDropped() {
	s.onSign(nil)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh()).Once()

	_, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.ErrorIs(err, domain.ErrOutcomeDropped)
}

func (s *transferSuite) TestCorrelatorFailure() {
	s.onSign(nil)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Receipt: &types.Receipt{Status: 1}})).Once()
	boom := errors.New("getLogs failed")
	s.correlator.On("FindEvent", mock.Anything, domain.EventTransfer, mock.Anything).Return(nil, boom).Once()

	_, err := s.im.Transfer(s.ctx, recipient, big.NewInt(42))
	s.Equal(boom, err)
}

func (s *transferSuite) TestRecipientIsNormalized() {
	s.onSign(nil)
	s.ledger.On("SendSignedTransaction", mock.Anything, mock.Anything).Return(outcomeCh(domain.SubmissionOutcome{Receipt: &types.Receipt{Status: 1}})).Once()
	s.correlator.On("FindEvent", mock.Anything, domain.EventTransfer, domain.EventFilter{
		"from": domain.EventValue(contract),
		"to":   domain.EventValue("0x94ead797046c7b654cab82c1c27ad223b6501f1f"),
	}).Return(nil, nil).Once()

	_, err := s.im.Transfer(s.ctx, domain.Address(common.HexToAddress(string(recipient)).Hex()[2:]), big.NewInt(42))
	s.NoError(err)
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, new(transferSuite))
}

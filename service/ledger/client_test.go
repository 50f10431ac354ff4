package ledger

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bAbi "github.com/x-xyz/nfttransfer/base/abi"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	bEth "github.com/x-xyz/nfttransfer/base/ethereum"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

// jsonError mimics the error ethclient returns for a JSON-RPC error response
type jsonError struct {
	code int
	msg  string
	data interface{}
}

func (e *jsonError) Error() string          { return e.msg }
func (e *jsonError) ErrorCode() int         { return e.code }
func (e *jsonError) ErrorData() interface{} { return e.data }

var (
	contract  = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	recipient = common.HexToAddress("0x94ead797046c7b654cab82c1c27ad223b6501f1f")
	chainId   = big.NewInt(1337)
)

type ledgerClientSuite struct {
	suite.Suite
	ctx  bCtx.Ctx
	eth  *mocks.EthClientRepo
	cred *bEth.KeyCredential
	im   domain.LedgerClient
}

func (s *ledgerClientSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.eth = &mocks.EthClientRepo{}
	key, _, err := bEth.GenerateKey()
	s.Require().NoError(err)
	s.cred = bEth.NewKeyCredential(key)
	s.im = New(&ClientCfg{
		EthClient:           s.eth,
		Contract:            contract,
		ReceiptPollInterval: time.Millisecond,
		ReceiptPollLimit:    time.Millisecond,
	})
}

func (s *ledgerClientSuite) TearDownTest() {
	s.eth.AssertExpectations(s.T())
}

func (s *ledgerClientSuite) envelope() *domain.TransactionEnvelope {
	data, err := bAbi.PackTransferFrom(s.cred.Address(), recipient, big.NewInt(42))
	s.Require().NoError(err)
	return &domain.TransactionEnvelope{
		Sender:   s.cred.Address(),
		To:       contract.ToCommon(),
		GasLimit: 50000,
		Data:     data,
	}
}

func (s *ledgerClientSuite) signed() *domain.SignedTransaction {
	s.eth.On("ChainID", mock.Anything).Return(chainId, nil).Once()
	s.eth.On("PendingNonceAt", mock.Anything, s.cred.Address()).Return(uint64(7), nil).Once()
	s.eth.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1000000000), nil).Once()
	tx, err := s.im.SignTransaction(s.ctx, s.envelope(), s.cred)
	s.Require().NoError(err)
	return tx
}

func (s *ledgerClientSuite) TestSignTransaction() {
	tx := s.signed()
	env := s.envelope()
	s.Equal(uint64(7), tx.Tx.Nonce())
	s.Equal(uint64(50000), tx.Tx.Gas())
	s.Equal(env.To, *tx.Tx.To())
	s.Equal(env.Data, tx.Tx.Data())
	s.Equal(0, chainId.Cmp(tx.ChainId))

	sender, err := bEth.RecoverTxSender(tx.Tx, tx.ChainId)
	s.Require().NoError(err)
	s.Equal(s.cred.Address(), sender)
}

func (s *ledgerClientSuite) TestSignTransaction_nilCredential() {
	_, err := s.im.SignTransaction(s.ctx, s.envelope(), nil)
	var signErr *domain.SigningError
	s.Require().ErrorAs(err, &signErr)
	s.ErrorIs(err, domain.ErrNilCredential)
}

func (s *ledgerClientSuite) TestSignTransaction_signerFails() {
	s.eth.On("ChainID", mock.Anything).Return(chainId, nil).Once()
	s.eth.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(0), nil).Once()
	s.eth.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1), nil).Once()
	cred := &mocks.Credential{}
	cred.On("SignTx", mock.Anything, chainId).Return(nil, errors.New("locked")).Once()

	_, err := s.im.SignTransaction(s.ctx, s.envelope(), cred)
	var signErr *domain.SigningError
	s.Require().ErrorAs(err, &signErr)
	s.Equal("signing failed: locked", err.Error())
	cred.AssertExpectations(s.T())
}

func (s *ledgerClientSuite) TestSend_receipt() {
	tx := s.signed()
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Tx.Hash(), BlockNumber: big.NewInt(10), GasUsed: 40000}
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(nil, ethereum.NotFound).Twice()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(receipt, nil).Once()

	ch := s.im.SendSignedTransaction(s.ctx, tx)
	outcome := <-ch
	s.Require().True(outcome.IsReceipt())
	s.Equal(receipt, outcome.Receipt)

	_, ok := <-ch
	s.False(ok, "channel closed after the single outcome")
}

func (s *ledgerClientSuite) TestSend_rejectedByNode() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(&jsonError{code: -32000, msg: "insufficient funds for gas * price + value"}).Once()

	outcome := <-s.im.SendSignedTransaction(s.ctx, tx)
	var submitErr *domain.SubmissionError
	s.Require().ErrorAs(outcome.Err, &submitErr)
	s.Equal("insufficient funds for gas * price + value", submitErr.Reason)
	s.Equal(tx.Hash(), submitErr.TxHash)
	s.Nil(outcome.Receipt)
}

func (s *ledgerClientSuite) TestSend_transportFailure() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(errors.New("connection refused")).Once()

	outcome := <-s.im.SendSignedTransaction(s.ctx, tx)
	var transportErr *domain.TransportError
	s.Require().ErrorAs(outcome.Err, &transportErr)
	s.Equal(opSend, transportErr.Op)
}

func (s *ledgerClientSuite) TestSend_reverted() {
	tx := s.signed()
	receipt := &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: tx.Tx.Hash(), BlockNumber: big.NewInt(11)}
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(receipt, nil).Once()

	stringTy, err := abi.NewType("string", "", nil)
	s.Require().NoError(err)
	packed, err := abi.Arguments{{Type: stringTy}}.Pack("ERC721: transfer caller is not owner nor approved")
	s.Require().NoError(err)
	revert := append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)
	s.eth.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.From == s.cred.Address() && *msg.To == contract.ToCommon()
	}), big.NewInt(10)).Return(nil, &jsonError{code: 3, msg: "execution reverted", data: hexutil.Encode(revert)}).Once()

	outcome := <-s.im.SendSignedTransaction(s.ctx, tx)
	var submitErr *domain.SubmissionError
	s.Require().ErrorAs(outcome.Err, &submitErr)
	s.Equal("reverted: ERC721: transfer caller is not owner nor approved", submitErr.Error())
}

func (s *ledgerClientSuite) TestParentBlock() {
	s.Equal(big.NewInt(10), parentBlock(big.NewInt(11)))
	s.Nil(parentBlock(big.NewInt(0)))
	s.Nil(parentBlock(nil))
}

func (s *ledgerClientSuite) TestSend_watcherPanics() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil).Once()

	ch := s.im.SendSignedTransaction(s.ctx, tx)
	outcome := <-ch
	var transportErr *domain.TransportError
	s.Require().ErrorAs(outcome.Err, &transportErr)
	_, ok := <-ch
	s.False(ok)
}

func (s *ledgerClientSuite) TestGetPastEvents() {
	from := s.cred.Address()
	l := types.Log{
		Address: contract.ToCommon(),
		Topics: []common.Hash{
			bAbi.ERC721TokenABI.Events["Transfer"].ID,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(recipient.Bytes()),
			common.BigToHash(big.NewInt(42)),
		},
		BlockNumber: 12,
		TxHash:      common.HexToHash("0xabc"),
		Index:       3,
	}
	to := uint64(20)
	s.eth.On("FilterLogs", mock.Anything, mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.FromBlock.Uint64() == 5 && q.ToBlock.Uint64() == 20 &&
			q.Addresses[0] == contract.ToCommon() &&
			q.Topics[0][0] == bAbi.ERC721TokenABI.Events["Transfer"].ID
	})).Return([]types.Log{l}, nil).Once()

	events, err := s.im.GetPastEvents(s.ctx, domain.EventTransfer, domain.BlockRange{From: 5, To: &to})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	e := events[0]
	s.Equal(domain.EventTransfer, e.Event)
	s.Equal(contract, e.Address)
	s.Equal(domain.BlockNumber(12), e.BlockNumber)
	s.Equal(uint(3), e.LogIndex)
	s.Equal(domain.AddressValue(domain.ToAddress(from)), e.ReturnValues["from"])
	s.Equal(domain.AddressValue(domain.ToAddress(recipient)), e.ReturnValues["to"])
	s.Equal(domain.EventValue("42"), e.ReturnValues["tokenId"])
}

func (s *ledgerClientSuite) TestGetPastEvents_latestAndErrors() {
	s.eth.On("FilterLogs", mock.Anything, mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.ToBlock == nil
	})).Return(nil, errors.New("i/o timeout")).Once()

	_, err := s.im.GetPastEvents(s.ctx, domain.EventTransfer, domain.FullRange())
	var transportErr *domain.TransportError
	s.ErrorAs(err, &transportErr)

	_, err = s.im.GetPastEvents(s.ctx, "Mint", domain.FullRange())
	s.ErrorIs(err, domain.ErrUnknownEvent)
}

func TestLedgerClientSuite(t *testing.T) {
	suite.Run(t, new(ledgerClientSuite))
}

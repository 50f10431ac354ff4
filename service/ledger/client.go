package ledger

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"

	bAbi "github.com/x-xyz/nfttransfer/base/abi"
	"github.com/x-xyz/nfttransfer/base/backoff"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/goroutine"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/metrics"
	"github.com/x-xyz/nfttransfer/domain"
)

const (
	defaultReceiptPollInterval = time.Second
	defaultReceiptPollLimit    = 15 * time.Second

	opSend    = "eth_sendRawTransaction"
	opReceipt = "eth_getTransactionReceipt"
	opGetLogs = "eth_getLogs"
)

var met = metrics.New("ledger")

type ClientCfg struct {
	EthClient domain.EthClientRepo
	// ArchiveClient replays reverted calls at their block, EthClient is used when nil
	ArchiveClient domain.EthClientRepo
	// ChainId is asked from the node when nil
	ChainId  *big.Int
	Contract domain.Address
	// ABI defaults to ERC-721
	ABI *abi.ABI

	ReceiptPollInterval time.Duration
	ReceiptPollLimit    time.Duration
}

type impl struct {
	cli      domain.EthClientRepo
	archive  domain.EthClientRepo
	contract common.Address
	abi      abi.ABI

	pollInterval time.Duration
	pollLimit    time.Duration

	chainIdMu sync.Mutex
	chainId   *big.Int
}

func New(cfg *ClientCfg) domain.LedgerClient {
	im := &impl{
		cli:          cfg.EthClient,
		archive:      cfg.ArchiveClient,
		contract:     cfg.Contract.ToCommon(),
		abi:          bAbi.ERC721TokenABI,
		pollInterval: cfg.ReceiptPollInterval,
		pollLimit:    cfg.ReceiptPollLimit,
		chainId:      cfg.ChainId,
	}
	if cfg.ABI != nil {
		im.abi = *cfg.ABI
	}
	if im.archive == nil {
		im.archive = im.cli
	}
	if im.pollInterval <= 0 {
		im.pollInterval = defaultReceiptPollInterval
	}
	if im.pollLimit <= 0 {
		im.pollLimit = defaultReceiptPollLimit
	}
	return im
}

func (im *impl) getChainId(c bCtx.Ctx) (*big.Int, error) {
	im.chainIdMu.Lock()
	defer im.chainIdMu.Unlock()
	if im.chainId != nil {
		return im.chainId, nil
	}
	id, err := im.cli.ChainID(c)
	if err != nil {
		c.WithField("err", err).Error("cli.ChainID failed")
		return nil, &domain.TransportError{Op: "eth_chainId", Err: err}
	}
	im.chainId = id
	return id, nil
}

func (im *impl) BlockNumber(c bCtx.Ctx) (uint64, error) {
	n, err := im.cli.BlockNumber(c)
	if err != nil {
		c.WithField("err", err).Error("cli.BlockNumber failed")
		return 0, &domain.TransportError{Op: "eth_blockNumber", Err: err}
	}
	return n, nil
}

func (im *impl) SignTransaction(c bCtx.Ctx, env *domain.TransactionEnvelope, signer domain.Credential) (*domain.SignedTransaction, error) {
	if signer == nil {
		return nil, &domain.SigningError{Err: domain.ErrNilCredential}
	}
	chainId, err := im.getChainId(c)
	if err != nil {
		return nil, err
	}
	nonce, err := im.cli.PendingNonceAt(c, env.Sender)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "sender": env.Sender}).Error("cli.PendingNonceAt failed")
		return nil, &domain.TransportError{Op: "eth_getTransactionCount", Err: err}
	}
	gasPrice, err := im.cli.SuggestGasPrice(c)
	if err != nil {
		c.WithField("err", err).Error("cli.SuggestGasPrice failed")
		return nil, &domain.TransportError{Op: "eth_gasPrice", Err: err}
	}

	to := env.To
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      env.GasLimit,
		GasPrice: gasPrice,
		Data:     env.Data,
	})
	signed, err := signer.SignTx(tx, chainId)
	if err != nil {
		c.WithField("err", err).Error("signer.SignTx failed")
		return nil, &domain.SigningError{Err: err}
	}
	return &domain.SignedTransaction{
		Envelope: env,
		Tx:       signed,
		ChainId:  chainId,
	}, nil
}

func (im *impl) SendSignedTransaction(c bCtx.Ctx, tx *domain.SignedTransaction) <-chan domain.SubmissionOutcome {
	out := make(chan domain.SubmissionOutcome, 1)
	var once sync.Once
	deliver := func(o domain.SubmissionOutcome) {
		once.Do(func() {
			out <- o
			close(out)
		})
	}

	c = bCtx.WithValue(c, "txHash", tx.Hash())
	goroutine.RecoverableGo(
		func() {
			deliver(im.submit(c, tx))
		},
		goroutine.WithName("receiptWatcher"),
		goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
			deliver(domain.SubmissionOutcome{
				Err: &domain.TransportError{Op: opReceipt, Err: fmt.Errorf("watcher panic: %v", p)},
			})
		}),
	)
	return out
}

func (im *impl) submit(c bCtx.Ctx, tx *domain.SignedTransaction) domain.SubmissionOutcome {
	if err := im.cli.SendTransaction(c, tx.Tx); err != nil {
		c.WithField("err", err).Error("cli.SendTransaction failed")
		met.BumpSum("send.err", 1)
		return domain.SubmissionOutcome{Err: toSubmitError(tx.Hash(), opSend, err)}
	}
	c.Info("transaction sent")

	receipt, err := im.waitReceipt(c, tx.Tx.Hash())
	if err != nil {
		c.WithField("err", err).Error("waitReceipt failed")
		return domain.SubmissionOutcome{Err: &domain.TransportError{Op: opReceipt, Err: err}}
	}

	c = bCtx.WithValues(c, map[string]interface{}{
		"block":   receipt.BlockNumber,
		"gasUsed": receipt.GasUsed,
		"fee":     fee(tx.Tx, receipt).String(),
	})
	if receipt.Status == types.ReceiptStatusFailed {
		reason := im.revertReason(c, tx, receipt)
		c.WithField("reason", reason).Warn("transaction reverted")
		met.BumpSum("reverted", 1)
		return domain.SubmissionOutcome{Err: &domain.SubmissionError{
			TxHash: tx.Hash(),
			Reason: "reverted: " + reason,
		}}
	}
	c.Info("transaction included")
	return domain.SubmissionOutcome{Receipt: receipt}
}

func (im *impl) waitReceipt(c bCtx.Ctx, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := backoff.NewLinear(im.pollInterval, im.pollLimit).Poll(c, 0, func() (bool, error) {
		r, err := im.cli.TransactionReceipt(c, hash)
		if errors.Is(err, ethereum.NotFound) {
			return false, nil
		} else if err != nil {
			return false, err
		}
		receipt = r
		return true, nil
	})
	return receipt, err
}

// revertReason replays the call on the state the transaction executed
// against, the parent of its inclusion block
func (im *impl) revertReason(c bCtx.Ctx, tx *domain.SignedTransaction, receipt *types.Receipt) string {
	msg := ethereum.CallMsg{
		From:     tx.Envelope.Sender,
		To:       tx.Tx.To(),
		Gas:      tx.Tx.Gas(),
		GasPrice: tx.Tx.GasPrice(),
		Value:    tx.Tx.Value(),
		Data:     tx.Tx.Data(),
	}
	_, err := im.archive.CallContract(c, msg, parentBlock(receipt.BlockNumber))
	if err == nil {
		return "execution reverted"
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if s, ok := dataErr.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(s); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}

// parentBlock is nil, meaning latest, when the inclusion block is unknown
func parentBlock(n *big.Int) *big.Int {
	if n == nil || n.Sign() <= 0 {
		return nil
	}
	return new(big.Int).Sub(n, common.Big1)
}

func (im *impl) GetPastEvents(c bCtx.Ctx, eventName string, r domain.BlockRange) ([]*domain.LedgerEvent, error) {
	event, ok := im.abi.Events[eventName]
	if !ok {
		return nil, domain.ErrUnknownEvent
	}
	q := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(r.From),
		Addresses: []common.Address{im.contract},
		Topics:    [][]common.Hash{{event.ID}},
	}
	if r.To != nil {
		q.ToBlock = new(big.Int).SetUint64(*r.To)
	}

	logs, err := im.cli.FilterLogs(c, q)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": eventName,
			"range": r.String(),
		}).Error("cli.FilterLogs failed")
		return nil, &domain.TransportError{Op: opGetLogs, Err: err}
	}

	events := make([]*domain.LedgerEvent, 0, len(logs))
	for i := range logs {
		e, err := toLedgerEvent(im.abi, eventName, &logs[i])
		if err != nil {
			c.WithFields(log.Fields{
				"err":      err,
				"txHash":   logs[i].TxHash,
				"logIndex": logs[i].Index,
			}).Error("toLedgerEvent failed")
			return nil, err
		}
		events = append(events, e)
	}
	met.BumpHistogram("getlogs.events", float64(len(events)))
	return events, nil
}

func toLedgerEvent(_abi abi.ABI, eventName string, l *types.Log) (*domain.LedgerEvent, error) {
	values, err := bAbi.UnpackLog(_abi, eventName, l)
	if err != nil {
		return nil, err
	}
	returnValues := make(map[string]domain.EventValue, len(values))
	for k, v := range values {
		returnValues[k] = domain.ToEventValue(v)
	}
	return &domain.LedgerEvent{
		Event:           eventName,
		Address:         domain.ToAddress(l.Address),
		ReturnValues:    returnValues,
		BlockNumber:     domain.BlockNumber(l.BlockNumber),
		BlockHash:       domain.ToBlockHash(l.BlockHash),
		TransactionHash: domain.ToTxHash(l.TxHash),
		LogIndex:        l.Index,
		Removed:         l.Removed,
	}, nil
}

// toSubmitError keeps the node's wording for JSON-RPC errors, anything else
// never reached the ledger
func toSubmitError(hash domain.TxHash, op string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &domain.SubmissionError{TxHash: hash, Reason: rpcErr.Error(), Err: err}
	}
	return &domain.TransportError{Op: op, Err: err}
}

// fee in ether, legacy tx pays its gas price
func fee(tx *types.Transaction, receipt *types.Receipt) decimal.Decimal {
	wei := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), tx.GasPrice())
	return decimal.NewFromBigInt(wei, -18)
}

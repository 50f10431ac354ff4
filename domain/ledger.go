package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/nfttransfer/base/ctx"
)

// TransactionEnvelope is the unsigned call, derived from a TransferRequest
type TransactionEnvelope struct {
	Sender   common.Address
	To       common.Address
	GasLimit uint64
	Data     []byte
}

// SignedTransaction is an envelope plus the signed ledger transaction built from it
type SignedTransaction struct {
	Envelope *TransactionEnvelope
	Tx       *types.Transaction
	ChainId  *big.Int
}

func (s *SignedTransaction) Hash() TxHash {
	return ToTxHash(s.Tx.Hash())
}

// SubmissionOutcome is exactly one of Receipt or Err
type SubmissionOutcome struct {
	Receipt *types.Receipt
	Err     error
}

func (o SubmissionOutcome) IsReceipt() bool {
	return o.Err == nil && o.Receipt != nil
}

// Credential is an opaque handle able to sign for one address. The key
// material never leaves it.
type Credential interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

// LedgerClient is the node-facing collaborator of the transfer flow
type LedgerClient interface {
	EventSource

	// SignTransaction builds the ledger transaction for env and signs it with signer
	SignTransaction(c ctx.Ctx, env *TransactionEnvelope, signer Credential) (*SignedTransaction, error)

	// SendSignedTransaction submits tx. The returned channel delivers exactly
	// one outcome and is then closed. There is no timeout: it stays open
	// until the node reports inclusion or failure.
	SendSignedTransaction(c ctx.Ctx, tx *SignedTransaction) <-chan SubmissionOutcome

	// BlockNumber is the latest block known to the node
	BlockNumber(c ctx.Ctx) (uint64, error)
}

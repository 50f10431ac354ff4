package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	bAbi "github.com/x-xyz/nfttransfer/base/abi"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	bEth "github.com/x-xyz/nfttransfer/base/ethereum"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/metrics"
	"github.com/x-xyz/nfttransfer/domain"
)

const DefaultGasLimit = 50000

type TransferUseCaseCfg struct {
	Ledger     domain.LedgerClient
	Correlator domain.EventCorrelator
	Credential domain.Credential
	// Contract is the asset contract transferFrom is called on
	Contract domain.Address
	// Owner is the current holder, the credential's address when empty
	Owner    domain.Address
	GasLimit uint64
	// WaitTimeout stops waiting for the submission outcome, 0 waits forever.
	// The transaction may still be included after it fires.
	WaitTimeout time.Duration
}

type impl struct {
	ledger      domain.LedgerClient
	correlator  domain.EventCorrelator
	credential  domain.Credential
	contract    domain.Address
	owner       domain.Address
	gasLimit    uint64
	waitTimeout time.Duration
	met         metrics.Service
}

func New(cfg *TransferUseCaseCfg) domain.TransferUseCase {
	im := &impl{
		ledger:      cfg.Ledger,
		correlator:  cfg.Correlator,
		credential:  cfg.Credential,
		contract:    domain.ToAddress(cfg.Contract.ToCommon()),
		owner:       cfg.Owner.ToLower(),
		gasLimit:    cfg.GasLimit,
		waitTimeout: cfg.WaitTimeout,
		met:         metrics.New("transfer"),
	}
	if im.owner.IsEmpty() && cfg.Credential != nil {
		im.owner = domain.ToAddress(cfg.Credential.Address())
	}
	if im.gasLimit == 0 {
		im.gasLimit = DefaultGasLimit
	}
	return im
}

func (im *impl) Transfer(c bCtx.Ctx, recipient domain.Address, assetId *big.Int) (*domain.LedgerEvent, error) {
	defer im.met.BumpTime("time").End()

	if !recipient.IsValid() {
		return nil, domain.ErrInvalidAddress
	}
	if assetId == nil || assetId.Sign() < 0 {
		return nil, domain.ErrInvalidAssetId
	}

	req := &domain.TransferRequest{
		Id:         uuid.NewString(),
		AssetId:    new(big.Int).Set(assetId),
		Recipient:  domain.ToAddress(recipient.ToCommon()),
		Credential: im.credential,
	}
	c = bCtx.WithValues(c, map[string]interface{}{
		"requestId": req.Id,
		"recipient": req.Recipient,
		"assetId":   req.AssetId.String(),
	})

	signed, err := im.sign(c, req)
	if err != nil {
		im.met.BumpSum("rejected", 1, "reason", "signing")
		return nil, err
	}
	c = bCtx.WithValue(c, "txHash", signed.Hash())

	im.met.BumpSum("submitted", 1)
	outcome, err := im.wait(c, im.ledger.SendSignedTransaction(c, signed))
	if err != nil {
		c.WithField("err", err).Warn("stopped waiting for outcome")
		return nil, err
	}
	if outcome.Err != nil {
		c.WithField("err", outcome.Err).Warn("transfer rejected")
		im.met.BumpSum("rejected", 1, "reason", "submission")
		return nil, outcome.Err
	}

	event, err := im.correlator.FindEvent(c, domain.EventTransfer, domain.TransferFilter(im.contract, req.Recipient))
	if err != nil {
		c.WithField("err", err).Error("correlator.FindEvent failed")
		return nil, err
	}
	if event == nil {
		c.Warn("transfer included without a matching event")
		im.met.BumpSum("unconfirmed", 1)
		return nil, nil
	}
	c.WithFields(log.Fields{
		"block":    event.BlockNumber,
		"logIndex": event.LogIndex,
	}).Info("transfer confirmed")
	im.met.BumpSum("confirmed", 1)
	return event, nil
}

func (im *impl) envelope(req *domain.TransferRequest) (*domain.TransactionEnvelope, error) {
	data, err := bAbi.PackTransferFrom(im.owner.ToCommon(), req.Recipient.ToCommon(), req.AssetId)
	if err != nil {
		return nil, err
	}
	return &domain.TransactionEnvelope{
		Sender:   im.owner.ToCommon(),
		To:       im.contract.ToCommon(),
		GasLimit: im.gasLimit,
		Data:     data,
	}, nil
}

// sign never submits. A node that cannot be reached keeps its
// *domain.TransportError, every other failure is a *domain.SigningError.
func (im *impl) sign(c bCtx.Ctx, req *domain.TransferRequest) (*domain.SignedTransaction, error) {
	if req.Credential == nil {
		return nil, &domain.SigningError{Err: domain.ErrNilCredential}
	}
	env, err := im.envelope(req)
	if err != nil {
		c.WithField("err", err).Error("envelope failed")
		return nil, &domain.SigningError{Err: err}
	}

	signed, err := im.ledger.SignTransaction(c, env, req.Credential)
	if err != nil {
		c.WithField("err", err).Error("ledger.SignTransaction failed")
		var (
			signErr      *domain.SigningError
			transportErr *domain.TransportError
		)
		if errors.As(err, &signErr) || errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, &domain.SigningError{Err: err}
	}
	if signed == nil || signed.Tx == nil {
		return nil, &domain.SigningError{Err: domain.ErrSignerMismatch}
	}

	ok, err := bEth.ValidateTxSignature(signed.Tx, signed.ChainId, env.Sender)
	if err != nil {
		c.WithField("err", err).Error("ValidateTxSignature failed")
		return nil, &domain.SigningError{Err: err}
	}
	if !ok {
		c.WithField("sender", env.Sender).Error("signature does not recover to sender")
		return nil, &domain.SigningError{Err: domain.ErrSignerMismatch}
	}
	return signed, nil
}

func (im *impl) wait(c bCtx.Ctx, ch <-chan domain.SubmissionOutcome) (domain.SubmissionOutcome, error) {
	var timeout <-chan time.Time
	if im.waitTimeout > 0 {
		timer := time.NewTimer(im.waitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case outcome, ok := <-ch:
		if !ok || (outcome.Err == nil && outcome.Receipt == nil) {
			return domain.SubmissionOutcome{}, &domain.TransportError{Op: "submit", Err: domain.ErrOutcomeDropped}
		}
		return outcome, nil
	case <-timeout:
		return domain.SubmissionOutcome{}, domain.ErrWaitTimeout
	case <-c.Done():
		return domain.SubmissionOutcome{}, c.Err()
	}
}

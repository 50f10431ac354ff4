package domain

import (
	"math/big"

	"github.com/x-xyz/nfttransfer/base/ctx"
)

// TransferRequest lives for one transfer call
type TransferRequest struct {
	Id         string
	AssetId    *big.Int
	Recipient  Address
	Credential Credential
}

type TransferUseCase interface {
	// Transfer moves assetId from the configured owner to recipient and
	// returns the first Transfer event confirming it. A nil event with a nil
	// error means the transaction was included but no confirming event was found.
	Transfer(c ctx.Ctx, recipient Address, assetId *big.Int) (*LedgerEvent, error)
}

package ethereum

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RecoverTxSender returns the address that signed tx
func RecoverTxSender(tx *types.Transaction, chainId *big.Int) (common.Address, error) {
	return types.Sender(types.LatestSignerForChainID(chainId), tx)
}

// ValidateTxSignature reports whether tx is signed by signer
func ValidateTxSignature(tx *types.Transaction, chainId *big.Int, signer common.Address) (bool, error) {
	sender, err := RecoverTxSender(tx, chainId)
	if err != nil {
		return false, err
	}
	return bytes.Equal(sender.Bytes(), signer.Bytes()), nil
}

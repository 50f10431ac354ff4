package ethereum

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// KeyCredential signs with an in-memory secp256k1 key
type KeyCredential struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewKeyCredential(key *ecdsa.PrivateKey) *KeyCredential {
	return &KeyCredential{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// NewKeyCredentialFromHex accepts the key with or without 0x prefix
func NewKeyCredentialFromHex(hexKey string) (*KeyCredential, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, xerrors.Errorf("failed to parse private key: %w", err)
	}
	return NewKeyCredential(key), nil
}

func (k *KeyCredential) Address() common.Address {
	return k.address
}

func (k *KeyCredential) SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainId), k.key)
}

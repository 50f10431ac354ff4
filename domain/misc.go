package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// ToAddress normalizes a go-ethereum address into the lower-case form stored and compared everywhere
func ToAddress(a common.Address) Address {
	return Address(strings.ToLower(a.Hex()))
}

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// IsValid reports whether a is a 20 byte hex address, with or without 0x prefix
func (a Address) IsValid() bool {
	return common.IsHexAddress(string(a))
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ToBigInt parses a base-10 token id
func (i TokenId) ToBigInt() (*big.Int, bool) {
	return new(big.Int).SetString(i.String(), 10)
}

type BlockNumber uint64

type TxHash string

func ToTxHash(h common.Hash) TxHash {
	return TxHash(strings.ToLower(h.Hex()))
}

type BlockHash string

func ToBlockHash(h common.Hash) BlockHash {
	return BlockHash(strings.ToLower(h.Hex()))
}

type Table string

const (
	TableTransferEvents Table = "transfer_events"
	TableTrackerStates  Table = "tracker_states"
)

package domain

import (
	"github.com/x-xyz/nfttransfer/base/ctx"
)

// TransferEvent is an indexed copy of a ledger event, keyed by chain, contract, tx and log index
type TransferEvent struct {
	ChainId         ChainId               `bson:"chainId"`
	ContractAddress Address               `bson:"contractAddress"`
	Event           string                `bson:"event"`
	BlockNumber     BlockNumber           `bson:"blockNumber"`
	BlockHash       BlockHash             `bson:"blockHash"`
	TxHash          TxHash                `bson:"txHash"`
	LogIndex        uint                  `bson:"logIndex"`
	ReturnValues    map[string]EventValue `bson:"returnValues"`
}

func (e *TransferEvent) ToId() *TransferEventId {
	return &TransferEventId{
		ChainId:         e.ChainId,
		ContractAddress: e.ContractAddress,
		TxHash:          e.TxHash,
		LogIndex:        e.LogIndex,
	}
}

func (e *TransferEvent) ToLedgerEvent() *LedgerEvent {
	return &LedgerEvent{
		Event:           e.Event,
		Address:         e.ContractAddress,
		ReturnValues:    e.ReturnValues,
		BlockNumber:     e.BlockNumber,
		BlockHash:       e.BlockHash,
		TransactionHash: e.TxHash,
		LogIndex:        e.LogIndex,
	}
}

func NewTransferEvent(chainId ChainId, e *LedgerEvent) *TransferEvent {
	return &TransferEvent{
		ChainId:         chainId,
		ContractAddress: e.Address.ToLower(),
		Event:           e.Event,
		BlockNumber:     e.BlockNumber,
		BlockHash:       e.BlockHash,
		TxHash:          e.TransactionHash,
		LogIndex:        e.LogIndex,
		ReturnValues:    e.ReturnValues,
	}
}

type TransferEventId struct {
	ChainId         ChainId `bson:"chainId"`
	ContractAddress Address `bson:"contractAddress"`
	TxHash          TxHash  `bson:"txHash"`
	LogIndex        uint    `bson:"logIndex"`
}

type TransferEventFindAllOptions struct {
	ChainId         *ChainId
	ContractAddress *Address
	Event           *string
	FromBlock       *BlockNumber
	ToBlock         *BlockNumber
}

type TransferEventFindAllOptionsFunc func(*TransferEventFindAllOptions) error

func GetTransferEventFindAllOptions(opts ...TransferEventFindAllOptionsFunc) (TransferEventFindAllOptions, error) {
	res := TransferEventFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func TransferEventWithChainId(chainId ChainId) TransferEventFindAllOptionsFunc {
	return func(o *TransferEventFindAllOptions) error {
		o.ChainId = &chainId
		return nil
	}
}

func TransferEventWithContract(addr Address) TransferEventFindAllOptionsFunc {
	return func(o *TransferEventFindAllOptions) error {
		a := addr.ToLower()
		o.ContractAddress = &a
		return nil
	}
}

func TransferEventWithEvent(name string) TransferEventFindAllOptionsFunc {
	return func(o *TransferEventFindAllOptions) error {
		o.Event = &name
		return nil
	}
}

func TransferEventWithBlockRange(r BlockRange) TransferEventFindAllOptionsFunc {
	return func(o *TransferEventFindAllOptions) error {
		from := BlockNumber(r.From)
		o.FromBlock = &from
		if r.To != nil {
			to := BlockNumber(*r.To)
			o.ToBlock = &to
		}
		return nil
	}
}

type TransferEventRepo interface {
	Upsert(ctx.Ctx, *TransferEvent) error
	// FindAll returns events sorted by block number then log index
	FindAll(ctx.Ctx, ...TransferEventFindAllOptionsFunc) ([]*TransferEvent, error)
}

type TransferEventUseCase interface {
	Store(ctx.Ctx, *TransferEvent) error
	FindAll(ctx.Ctx, ...TransferEventFindAllOptionsFunc) ([]*TransferEvent, error)
}

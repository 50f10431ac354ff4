package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/x-xyz/nfttransfer/base/ctx"
)

const EventTransfer = "Transfer"

// EventValue is the canonical string form of a decoded event argument.
// Addresses are lower-case hex, integers base-10, bools "true"/"false" and
// byte strings 0x-hex, so filter values and decoded values compare with ==.
type EventValue string

func AddressValue(a Address) EventValue {
	return EventValue(a.ToLowerStr())
}

func UintValue(n *big.Int) EventValue {
	return EventValue(n.String())
}

func StringValue(s string) EventValue {
	return EventValue(s)
}

// ToEventValue canonicalizes an argument as unpacked by go-ethereum's abi package
func ToEventValue(v interface{}) EventValue {
	switch t := v.(type) {
	case common.Address:
		return EventValue(ToAddress(t))
	case *big.Int:
		return EventValue(t.String())
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []byte:
		return EventValue(hexutil.Encode(t))
	case [32]byte:
		return EventValue(hexutil.Encode(t[:]))
	case common.Hash:
		return EventValue(strings.ToLower(t.Hex()))
	case string:
		return EventValue(t)
	default:
		return EventValue(fmt.Sprint(t))
	}
}

// LedgerEvent is a copy of one event log emitted by a contract
type LedgerEvent struct {
	Event           string                `json:"event"`
	Address         Address               `json:"address"`
	ReturnValues    map[string]EventValue `json:"returnValues"`
	BlockNumber     BlockNumber           `json:"blockNumber"`
	BlockHash       BlockHash             `json:"blockHash"`
	TransactionHash TxHash                `json:"transactionHash"`
	LogIndex        uint                  `json:"logIndex"`
	Removed         bool                  `json:"removed"`
}

// EventFilter maps argument names to expected values
type EventFilter map[string]EventValue

// Matches is a subset match: every key of f must be present in the event's
// return values with an equal value, extra return values are ignored. An
// event without return values never matches.
func (f EventFilter) Matches(e *LedgerEvent) bool {
	if e == nil || e.ReturnValues == nil {
		return false
	}
	for k, want := range f {
		got, ok := e.ReturnValues[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// TransferFilter is the {from, to} filter used to confirm a transfer
func TransferFilter(from, to Address) EventFilter {
	return EventFilter{
		"from": AddressValue(from),
		"to":   AddressValue(to),
	}
}

// SerializeEvent renders an event the way callers receive it. An absent
// event is "null".
func SerializeEvent(e *LedgerEvent) string {
	if e == nil {
		return "null"
	}
	b, err := json.Marshal(e)
	if err != nil {
		return "null"
	}
	return string(b)
}

// SerializeRejection renders a rejected transfer as a JSON string literal of its reason
func SerializeRejection(err error) string {
	if err == nil {
		return "null"
	}
	b, _ := json.Marshal(err.Error())
	return string(b)
}

// EventSource returns past events of one contract. Implementations decide how
// the range is walked: one query, bounded windows, or a local index.
type EventSource interface {
	GetPastEvents(c ctx.Ctx, eventName string, r BlockRange) ([]*LedgerEvent, error)
}

// EventCorrelator finds the first past event satisfying a filter
type EventCorrelator interface {
	FindEvent(c ctx.Ctx, eventName string, filter EventFilter) (*LedgerEvent, error)
}

// BlockRange is inclusive on both ends, a nil To means the latest block
type BlockRange struct {
	From uint64
	To   *uint64
}

// FullRange is genesis to latest
func FullRange() BlockRange {
	return BlockRange{From: 0}
}

func (r BlockRange) String() string {
	if r.To == nil {
		return fmt.Sprintf("[%d, latest]", r.From)
	}
	return fmt.Sprintf("[%d, %d]", r.From, *r.To)
}

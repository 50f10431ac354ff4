package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/nfttransfer/base/abi"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/chain"
)

type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx) (bool, error)
	OwnerOf(ctx bCtx.Ctx, tokenId *big.Int) (domain.Address, error)
}

type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	addr              common.Address
	erc721InterfaceId [4]byte
}

func NewErc721(chainService chain.Client, addr domain.Address) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		addr:              addr.ToCommon(),
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "supportsInterface", e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, tokenId *big.Int) (domain.Address, error) {
	unpacked, err := e.chainService.Call(ctx, e.addr, nil, e.abi, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return domain.ToAddress(unpacked[0].(common.Address)), nil
}

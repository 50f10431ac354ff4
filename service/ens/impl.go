package ens

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	goens "github.com/wealdtech/go-ens/v3"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

type impl struct {
	client bind.ContractBackend
}

// Dial connects to a mainnet rpc, ENS registry lookups are not cached
func Dial(c ctx.Ctx, rpc string) (ENS, error) {
	client, err := ethclient.DialContext(c, rpc)
	if err != nil {
		return nil, err
	}
	return New(client), nil
}

func New(client bind.ContractBackend) ENS {
	return &impl{client: client}
}

func (im *impl) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	addr, err := goens.Resolve(im.client, name)
	if fmt.Sprint(err) == "unregistered name" || fmt.Sprint(err) == "no address" {
		return "", domain.ErrNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("failed to goens.Resolve")
		return "", err
	}
	return domain.ToAddress(addr), nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	name, err := goens.ReverseResolve(im.client, address.ToCommon())
	if fmt.Sprint(err) == "not a resolver" || fmt.Sprint(err) == "no resolution" {
		return "", domain.ErrNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to goens.ReverseResolve")
		return "", err
	}
	return name, nil
}

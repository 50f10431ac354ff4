package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	bEth "github.com/x-xyz/nfttransfer/base/ethereum"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

type ClientCfg struct {
	RpcUrl        string
	ArchiveRpcUrl string
	// Throttle caps concurrent calls per node, 0 disables it
	Throttle int
}

type Client interface {
	// Node is the latest-state client
	Node() domain.EthClientRepo
	// Archive serves historical state, it is Node when no archive url is set
	Archive() domain.EthClientRepo
	// Call packs method with _abi, calls addr at blk (nil for latest) and unpacks the result
	Call(c bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	node    domain.EthClientRepo
	archive domain.EthClientRepo
}

func dial(ctx bCtx.Ctx, url string, throttle int) (domain.EthClientRepo, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": url,
		}).Error("failed to dial rpc")
		return nil, err
	}
	if throttle > 0 {
		return bEth.NewThrottledClient(client, throttle), nil
	}
	return client, nil
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	node, err := dial(ctx, cfg.RpcUrl, cfg.Throttle)
	if err != nil {
		return nil, err
	}
	archive := node
	if cfg.ArchiveRpcUrl != "" {
		if archive, err = dial(ctx, cfg.ArchiveRpcUrl, cfg.Throttle); err != nil {
			// soft warning, historical calls fall back to the node
			ctx.WithField("err", err).Warn("archive rpc unavailable")
			archive = node
		}
	}
	return FromRepos(node, archive), nil
}

// FromRepos wraps already connected clients
func FromRepos(node, archive domain.EthClientRepo) Client {
	if archive == nil {
		archive = node
	}
	return &clientImpl{
		node:    node,
		archive: archive,
	}
}

func (c *clientImpl) Node() domain.EthClientRepo {
	return c.node
}

func (c *clientImpl) Archive() domain.EthClientRepo {
	return c.archive
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client := c.node
	if blk != nil {
		client = c.archive
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, &domain.TransportError{Op: "eth_call", Err: err}
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

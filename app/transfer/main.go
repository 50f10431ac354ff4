// transfer moves one asset and prints the confirming event as json. A
// rejected transfer prints its reason on stderr and exits 1.
package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nfttransfer/app/bootstrap"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/ens"
)

func main() {
	configPath := bootstrap.ConfigFlag()
	to := pflag.String("to", "", "recipient address or ens name")
	asset := pflag.String("asset", "", "asset id, base 10")
	pflag.Parse()

	err := run(*configPath, *to, *asset)
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, domain.SerializeRejection(err))
		os.Exit(1)
	}
}

func run(configPath, to, asset string) error {
	if err := bootstrap.LoadConfig(configPath); err != nil {
		return err
	}
	assetId, ok := new(big.Int).SetString(asset, 10)
	if !ok {
		return domain.ErrInvalidAssetId
	}

	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()
	// an interrupt only stops waiting, a submitted transaction stays submitted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	network, err := bootstrap.ActiveNetwork()
	if err != nil {
		return err
	}
	recipient, err := resolve(ctx, to)
	if err != nil {
		return err
	}
	_, ledger, err := bootstrap.Ledger(ctx, network)
	if err != nil {
		return &domain.TransportError{Op: "dial", Err: err}
	}
	q, err := bootstrap.Mongo(ctx)
	if err != nil {
		return err
	}
	source, err := bootstrap.EventSource(network, ledger, q)
	if err != nil {
		return err
	}
	credential, err := bootstrap.Credential()
	if err != nil {
		return &domain.SigningError{Err: err}
	}

	e, err := bootstrap.TransferUseCase(network, ledger, source, credential).Transfer(ctx, recipient, assetId)
	if err != nil {
		return err
	}
	fmt.Println(domain.SerializeEvent(e))
	return nil
}

func resolve(ctx bCtx.Ctx, to string) (domain.Address, error) {
	if !ens.IsName(to) {
		return domain.Address(to), nil
	}
	rpc := viper.GetString("ens.rpcUrl")
	if rpc == "" {
		return "", domain.ErrInvalidAddress
	}
	resolver, err := ens.Dial(ctx, rpc)
	if err != nil {
		return "", &domain.TransportError{Op: "ens_dial", Err: err}
	}
	addr, err := resolver.Resolve(ctx, to)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidAddress
	} else if err != nil {
		return "", &domain.TransportError{Op: "ens_resolve", Err: err}
	}
	return addr, nil
}

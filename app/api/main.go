package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nfttransfer/app/bootstrap"
	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	bValidator "github.com/x-xyz/nfttransfer/base/validator"
	hcdomain "github.com/x-xyz/nfttransfer/domain/healthcheck"
	mmiddleware "github.com/x-xyz/nfttransfer/middleware"
	"github.com/x-xyz/nfttransfer/service/chain/contract"
	"github.com/x-xyz/nfttransfer/service/ens"
	auth_delivery "github.com/x-xyz/nfttransfer/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/nfttransfer/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/nfttransfer/stores/auth/usecase"
	event_delivery "github.com/x-xyz/nfttransfer/stores/event/delivery/http"
	event_usecase "github.com/x-xyz/nfttransfer/stores/event/usecase"
	hc_delivery "github.com/x-xyz/nfttransfer/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/nfttransfer/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/nfttransfer/stores/healthcheck/usecase"
	metadata_delivery "github.com/x-xyz/nfttransfer/stores/metadata/delivery/http"
	metadata_usecase "github.com/x-xyz/nfttransfer/stores/metadata/usecase"
	transfer_delivery "github.com/x-xyz/nfttransfer/stores/transfer/delivery/http"
)

func main() {
	configPath := bootstrap.ConfigFlag()
	pflag.Parse()
	if err := bootstrap.LoadConfig(*configPath); err != nil {
		panic(err)
	}
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	validate := bValidator.New()
	e.Validator = bValidator.NewCustomValidator(validate)

	context := ctx.Background()

	network, err := bootstrap.ActiveNetwork()
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.ActiveNetwork failed")
	}
	context.WithFields(network.Fields()).Info("config")

	chainService, ledger, err := bootstrap.Ledger(context, network)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.Ledger failed")
	}
	q, err := bootstrap.Mongo(context)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.Mongo failed")
	}
	source, err := bootstrap.EventSource(network, ledger, q)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.EventSource failed")
	}
	credential, err := bootstrap.Credential()
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.Credential failed")
	}
	context.WithField("sender", credential.Address().Hex()).Info("credential loaded")
	transfer := bootstrap.TransferUseCase(network, ledger, source, credential)
	correlator := event_usecase.NewCorrelator(&event_usecase.CorrelatorCfg{Source: source})

	uploader, err := bootstrap.MetadataUploader(context)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.MetadataUploader failed")
	}
	metadata := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		CtxTimeout: viper.GetDuration("context.timeout"),
		Uploader:   uploader,
		Validator:  validate,
	})

	// names are only resolved when an ethereum mainnet rpc is configured
	var ensService ens.ENS
	if rpc := viper.GetString("ens.rpcUrl"); rpc != "" {
		if ensService, err = ens.Dial(context, rpc); err != nil {
			context.WithField("err", err).Warn("ens unavailable")
		}
	}

	auth := auth_usecase.New(&auth_usecase.Cfg{
		JwtSecret: viper.GetString("auth.jwtSecret"),
		Operators: viper.GetStringMapString("auth.operators"),
		TokenTTL:  viper.GetDuration("auth.tokenTTL"),
	})
	authMiddleware := auth_middleware.New(auth)

	hcRepos := []hcdomain.HealthCheckRepo{hc_repo.NewLedgerRepo(ledger)}
	if q != nil {
		hcRepos = append(hcRepos, hc_repo.NewMongoRepo(q))
	}

	hc_delivery.New(e, hc_usecase.New(hcRepos...))
	auth_delivery.New(e, auth)
	transfer_delivery.New(e, &transfer_delivery.HandlerCfg{
		Transfer: transfer,
		Asset:    contract.NewErc721(chainService, network.Asset),
		Ens:      ensService,
		Auth:     authMiddleware.Auth(),
	})
	event_delivery.New(e, correlator)
	metadata_delivery.New(e, metadata, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

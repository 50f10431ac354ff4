package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nfttransfer/app/bootstrap"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/tracker"
	hcdomain "github.com/x-xyz/nfttransfer/domain/healthcheck"
	mmiddleware "github.com/x-xyz/nfttransfer/middleware"
	hc_delivery "github.com/x-xyz/nfttransfer/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/nfttransfer/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/nfttransfer/stores/healthcheck/usecase"
	tracker_state_repo "github.com/x-xyz/nfttransfer/stores/tracker_state/repository/mongo"
	tracker_state_usecase "github.com/x-xyz/nfttransfer/stores/tracker_state/usecase"
)

func main() {
	configPath := bootstrap.ConfigFlag()
	pflag.Parse()
	if err := bootstrap.LoadConfig(*configPath); err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	network, err := bootstrap.ActiveNetwork()
	if err != nil {
		ctx.WithField("err", err).Panic("bootstrap.ActiveNetwork failed")
	}
	ctxTimeout := viper.GetDuration("context.timeout")
	interval := viper.GetDuration("tracker.interval")
	followDistance := viper.GetUint64("tracker.followDistance")
	startBlock := viper.GetUint64("tracker.startBlock")
	ctx.WithFields(network.Fields()).WithFields(log.Fields{
		"interval":       interval,
		"followDistance": followDistance,
		"startBlock":     startBlock,
	}).Info("config")

	q, err := bootstrap.Mongo(ctx)
	if err != nil {
		ctx.WithField("err", err).Panic("bootstrap.Mongo failed")
	}
	if q == nil {
		ctx.Panic("mongo.uri is required by the indexer")
	}

	ctx.Info("connecting eth clients")
	chainService, ledger, err := bootstrap.Ledger(ctx, network)
	if err != nil {
		ctx.WithField("err", err).Panic("bootstrap.Ledger failed")
	}

	// start server to pass cloud run health check
	startEchoServer(hc_usecase.New(hc_repo.NewLedgerRepo(ledger), hc_repo.NewMongoRepo(q)))

	errCh := make(chan error, 1)
	t, err := tracker.NewEventTracker(&tracker.EventTrackerCfg{
		ChainId:              network.ChainId,
		Contract:             network.Asset,
		Source:               bootstrap.ChunkedSource(ledger),
		CurrentBlockGetter:   ledger,
		ClientWithArchive:    chainService.Archive(),
		TrackerStateUseCase:  tracker_state_usecase.NewTrackerStateUseCase(tracker_state_repo.NewTrackerStateMongoRepo(q), ctxTimeout),
		TransferEventUseCase: bootstrap.TransferEventUseCase(q),
		Interval:             interval,
		FollowDistance:       followDistance,
		StartBlock:           startBlock,
		ErrorCh:              errCh,
	})
	if err != nil {
		ctx.WithField("err", err).Panic("tracker.NewEventTracker failed")
	}
	t.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		ctx.WithField("signal", sig).Info("received signal")
	case err := <-errCh:
		ctx.WithField("err", err).Error("tracker stopped")
	}
	cancel()
	t.Wait()
	ctx.Info("tracker stopped")
}

func startEchoServer(hc hcdomain.HealthCheckUsecase) {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	hc_delivery.New(e, hc)

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.WithField("err", err).Error("shutting down the server")
		}
	}()
}

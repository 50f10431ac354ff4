// Package bootstrap reads the shared yaml config and builds the components
// every binary wires together.
package bootstrap

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
	"google.golang.org/api/option"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/database/mongoclient"
	"github.com/x-xyz/nfttransfer/base/env"
	bEth "github.com/x-xyz/nfttransfer/base/ethereum"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/chain"
	"github.com/x-xyz/nfttransfer/service/ledger"
	"github.com/x-xyz/nfttransfer/service/pinata"
	"github.com/x-xyz/nfttransfer/service/query"
	event_usecase "github.com/x-xyz/nfttransfer/stores/event/usecase"
	metadata_repository "github.com/x-xyz/nfttransfer/stores/metadata/repository"
	tracker_state_repo "github.com/x-xyz/nfttransfer/stores/tracker_state/repository/mongo"
	transfer_usecase "github.com/x-xyz/nfttransfer/stores/transfer/usecase"
	transfer_event_repo "github.com/x-xyz/nfttransfer/stores/transfer_event/repository/mongo"
	"github.com/x-xyz/nfttransfer/stores/transfer_event/source"
	transfer_event_usecase "github.com/x-xyz/nfttransfer/stores/transfer_event/usecase"
)

const DefaultConfigPath = "infra/configs/config.yaml"

const (
	SourceRpc     = "rpc"
	SourceChunked = "chunked"
	SourceIndex   = "index"

	BackendIpfs   = "ipfs"
	BackendPinata = "pinata"
	BackendGcs    = "gcs"
)

var ErrUnknownSource = xerrors.New("unknown correlator source")
var ErrUnknownBackend = xerrors.New("unknown metadata backend")

// ConfigFlag registers --config on the process flag set
func ConfigFlag() *string {
	return pflag.String("config", DefaultConfigPath, "path of the yaml config")
}

// LoadConfig reads path into viper. ACTIVENETWORK in the environment
// overrides activeNetwork.
func LoadConfig(path string) error {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	// overwrite active network in the config if the environment has been set
	if err := viper.BindEnv("ACTIVENETWORK"); err != nil {
		return err
	}

	viper.SetDefault("ledger.receiptPollInterval", time.Second)
	viper.SetDefault("ledger.receiptPollLimit", 15*time.Second)
	viper.SetDefault("correlator.source", SourceRpc)
	viper.SetDefault("context.timeout", 10*time.Second)
	viper.SetDefault("tracker.interval", 15*time.Second)
	viper.SetDefault("metadata.backend", BackendIpfs)
	viper.SetDefault("metadata.gateway", metadata_repository.DefaultIpfsGateway)

	log.SetDebug(viper.GetBool("debug"))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return nil
}

type Network struct {
	Name          string
	ChainId       domain.ChainId
	RpcUrl        string
	ArchiveRpcUrl string
	// Asset is the ERC-721 contract transfers are made on
	Asset domain.Address
}

func ActiveNetwork() (*Network, error) {
	name := viper.GetString("activeNetwork")
	info := viper.Sub(fmt.Sprintf("networks.%s", name))
	if info == nil {
		return nil, xerrors.Errorf("network %q not configured", name)
	}
	n := &Network{
		Name:          name,
		ChainId:       domain.ChainId(info.GetInt32("chainId")),
		RpcUrl:        info.GetString("rpcUrl"),
		ArchiveRpcUrl: info.GetString("archiveRpcUrl"),
		Asset:         domain.Address(viper.GetString(fmt.Sprintf("contract.%s.asset", name))),
	}
	if !n.Asset.IsValid() {
		return nil, xerrors.Errorf("contract.%s.asset: %w", name, domain.ErrInvalidAddress)
	}
	n.Asset = domain.ToAddress(n.Asset.ToCommon())
	return n, nil
}

func (n *Network) Fields() log.Fields {
	return log.Fields{
		"network":       n.Name,
		"chainId":       n.ChainId,
		"rpcUrl":        n.RpcUrl,
		"archiveRpcUrl": n.ArchiveRpcUrl,
		"asset":         n.Asset,
	}
}

// Ledger dials the network nodes and returns both the raw chain client and
// the ledger client bound to the asset contract
func Ledger(ctx bCtx.Ctx, n *Network) (chain.Client, domain.LedgerClient, error) {
	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrl:        n.RpcUrl,
		ArchiveRpcUrl: n.ArchiveRpcUrl,
		Throttle:      viper.GetInt("ledger.throttle"),
	})
	if err != nil {
		return nil, nil, err
	}
	var chainId *big.Int
	if n.ChainId != 0 {
		chainId = big.NewInt(int64(n.ChainId))
	}
	l := ledger.New(&ledger.ClientCfg{
		EthClient:           chainService.Node(),
		ArchiveClient:       chainService.Archive(),
		ChainId:             chainId,
		Contract:            n.Asset,
		ReceiptPollInterval: viper.GetDuration("ledger.receiptPollInterval"),
		ReceiptPollLimit:    viper.GetDuration("ledger.receiptPollLimit"),
	})
	return chainService, l, nil
}

// Mongo connects when mongo.uri is set, nil otherwise
func Mongo(ctx bCtx.Ctx) (query.Mongo, error) {
	uri := viper.GetString("mongo.uri")
	if uri == "" {
		return nil, nil
	}
	ctx.Info("init mongo")
	client, err := mongoclient.ConnectMongoClient(mongoclient.Cfg{
		URI:                uri,
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 2,
	})
	if err != nil {
		return nil, err
	}
	q := query.New(client, viper.GetBool("mongo.checkIndex"))
	if err := transfer_event_repo.EnsureIndexes(ctx, q); err != nil {
		return nil, err
	}
	if err := tracker_state_repo.EnsureIndexes(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func TransferEventUseCase(q query.Mongo) domain.TransferEventUseCase {
	return transfer_event_usecase.NewTransferEventUseCase(
		transfer_event_repo.NewTransferEventMongoRepo(q),
		viper.GetDuration("context.timeout"),
	)
}

// ChunkedSource walks the ledger in correlator.chunkSize windows
func ChunkedSource(l domain.LedgerClient) domain.EventSource {
	return ledger.NewChunkedEventSource(&ledger.ChunkedEventSourceCfg{
		Source:    l,
		ChunkSize: viper.GetUint64("correlator.chunkSize"),
	})
}

// EventSource picks the correlator.source implementation
func EventSource(n *Network, l domain.LedgerClient, q query.Mongo) (domain.EventSource, error) {
	switch kind := strings.ToLower(viper.GetString("correlator.source")); kind {
	case SourceRpc:
		return l, nil
	case SourceChunked:
		return ChunkedSource(l), nil
	case SourceIndex:
		if q == nil {
			return nil, xerrors.Errorf("correlator.source %q requires mongo.uri", kind)
		}
		return source.NewIndexedEventSource(&source.IndexedEventSourceCfg{
			UseCase:  TransferEventUseCase(q),
			ChainId:  n.ChainId,
			Contract: n.Asset,
		}), nil
	default:
		return nil, xerrors.Errorf("%q: %w", kind, ErrUnknownSource)
	}
}

// Credential loads transfer.privateKey, TRANSFER_PRIVATE_KEY takes precedence
func Credential() (domain.Credential, error) {
	key := env.Or("TRANSFER_PRIVATE_KEY", viper.GetString("transfer.privateKey"))
	if key == "" {
		return nil, domain.ErrNilCredential
	}
	cred, err := bEth.NewKeyCredentialFromHex(key)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

func TransferUseCase(n *Network, l domain.LedgerClient, src domain.EventSource, cred domain.Credential) domain.TransferUseCase {
	return transfer_usecase.New(&transfer_usecase.TransferUseCaseCfg{
		Ledger:      l,
		Correlator:  event_usecase.NewCorrelator(&event_usecase.CorrelatorCfg{Source: src}),
		Credential:  cred,
		Contract:    n.Asset,
		Owner:       domain.Address(viper.GetString("transfer.owner")),
		GasLimit:    viper.GetUint64("transfer.gasLimit"),
		WaitTimeout: viper.GetDuration("transfer.waitTimeout"),
	})
}

// MetadataUploader builds the metadata.backend uploader
func MetadataUploader(ctx bCtx.Ctx) (domain.MetadataUploaderRepo, error) {
	timeout := viper.GetDuration("context.timeout")
	gateway := viper.GetString("metadata.gateway")
	switch backend := strings.ToLower(viper.GetString("metadata.backend")); backend {
	case BackendIpfs:
		return metadata_repository.NewIpfsUploaderRepo(&metadata_repository.IpfsUploaderRepoCfg{
			Shell:   ipfsapi.NewShell(viper.GetString("ipfs.url")),
			Timeout: timeout,
			Gateway: gateway,
		}), nil
	case BackendPinata:
		p := pinata.New(&pinata.Cfg{
			ApiKey:    viper.GetString("pinata.apiKey"),
			ApiSecret: viper.GetString("pinata.apiSecret"),
		})
		return metadata_repository.NewPinataUploaderRepo(p, gateway), nil
	case BackendGcs:
		var opts []option.ClientOption
		if f := viper.GetString("gcs.credentialsFile"); f != "" {
			opts = append(opts, option.WithCredentialsFile(f))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return metadata_repository.NewCloudStorageUploaderRepo(&metadata_repository.CloudStorageUploaderRepoCfg{
			Timeout:    timeout,
			Client:     client,
			BucketName: viper.GetString("gcs.bucket"),
			Url:        viper.GetString("gcs.url"),
		})
	default:
		return nil, xerrors.Errorf("%q: %w", backend, ErrUnknownBackend)
	}
}

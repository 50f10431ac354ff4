package repository

import (
	"bytes"
	"strings"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

const DefaultIpfsGateway = "https://ipfs.io/ipfs/"

type IpfsUploaderRepoCfg struct {
	Shell   *ipfsapi.Shell
	Timeout time.Duration
	// Gateway is prefixed to the cid, defaults to DefaultIpfsGateway
	Gateway string
}

type ipfsUploaderRepo struct {
	shell   *ipfsapi.Shell
	gateway string
}

// NewIpfsUploaderRepo adds and pins documents through an ipfs node's http api
func NewIpfsUploaderRepo(cfg *IpfsUploaderRepoCfg) domain.MetadataUploaderRepo {
	gateway := cfg.Gateway
	if gateway == "" {
		gateway = DefaultIpfsGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	if cfg.Timeout > 0 {
		cfg.Shell.SetTimeout(cfg.Timeout)
	}
	return &ipfsUploaderRepo{shell: cfg.Shell, gateway: gateway}
}

func (r *ipfsUploaderRepo) Upload(c bCtx.Ctx, body []byte) (string, error) {
	cid, err := r.shell.Add(bytes.NewReader(body), ipfsapi.Pin(true))
	if err != nil {
		c.WithField("err", err).Error("shell.Add failed")
		return "", err
	}
	return r.gateway + cid, nil
}

package repository

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/crypto"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/pinata"
)

type pinataUploaderRepo struct {
	pinata  pinata.Service
	gateway string
}

func NewPinataUploaderRepo(s pinata.Service, gateway string) domain.MetadataUploaderRepo {
	if gateway == "" {
		gateway = DefaultIpfsGateway
	}
	return &pinataUploaderRepo{pinata: s, gateway: gateway}
}

func (r *pinataUploaderRepo) Upload(c bCtx.Ctx, body []byte) (string, error) {
	if !json.Valid(body) {
		return "", ErrInvalidJsonFormat
	}
	name := crypto.Keccak256Hash(body).Hex()
	hash, err := r.pinata.PinJson(c, json.RawMessage(body), pinata.WithName(name))
	if err != nil {
		c.WithField("err", err).Error("pinata.PinJson failed")
		return "", err
	}
	return r.gateway + hash, nil
}

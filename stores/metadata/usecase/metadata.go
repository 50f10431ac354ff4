package usecase

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/base/metrics"
	"github.com/x-xyz/nfttransfer/domain"
)

type MetadataUseCaseCfg struct {
	CtxTimeout time.Duration
	Uploader   domain.MetadataUploaderRepo
	Validator  *validator.Validate
}

type metadataUseCase struct {
	ctxTimeout time.Duration
	uploader   domain.MetadataUploaderRepo
	validate   *validator.Validate
	met        metrics.Service
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) domain.MetadataUseCase {
	u := &metadataUseCase{
		ctxTimeout: cfg.CtxTimeout,
		uploader:   cfg.Uploader,
		validate:   cfg.Validator,
		met:        metrics.New("metadata"),
	}
	if u.ctxTimeout <= 0 {
		u.ctxTimeout = 30 * time.Second
	}
	if u.validate == nil {
		u.validate = validator.New()
	}
	return u
}

func (u *metadataUseCase) Upload(c bCtx.Ctx, doc *domain.TokenMetadata) string {
	if doc == nil {
		c.Warn("nil metadata document")
		return ""
	}
	if err := u.validate.Struct(doc); err != nil {
		c.WithField("err", err).Warn("invalid metadata document")
		return ""
	}
	body, err := json.Marshal(doc)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return ""
	}

	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	defer u.met.BumpTime("upload.time").End()
	url, err := u.uploader.Upload(ctx, body)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": doc.Name,
		}).Error("uploader.Upload failed")
		u.met.BumpSum("upload.failed", 1)
		return ""
	}
	u.met.BumpSum("upload.succeeded", 1)
	return url
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/delivery"
	"github.com/x-xyz/nfttransfer/domain"
)

var ErrUploadFailed = errors.New("metadata upload failed")

type metadataHandler struct {
	metadata domain.MetadataUseCase
}

func New(e *echo.Echo, metadata domain.MetadataUseCase, mws ...echo.MiddlewareFunc) {
	handler := &metadataHandler{
		metadata: metadata,
	}
	e.POST("/metadata", handler.upload, mws...)
}

func (h *metadataHandler) upload(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	doc := &domain.TokenMetadata{}
	if err := c.Bind(doc); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	url := h.metadata.Upload(ctx, doc)
	if url == "" {
		return delivery.MakeJsonResp(c, http.StatusBadGateway, ErrUploadFailed)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, url)
}

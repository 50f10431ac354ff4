package http

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/delivery"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/middleware"
	"github.com/x-xyz/nfttransfer/service/chain/contract"
	"github.com/x-xyz/nfttransfer/service/ens"
)

type HandlerCfg struct {
	Transfer domain.TransferUseCase
	// Asset answers owner lookups, optional
	Asset contract.Erc721Contract
	// Ens resolves recipient names, optional
	Ens  ens.ENS
	Auth echo.MiddlewareFunc
}

type transferHandler struct {
	transfer domain.TransferUseCase
	asset    contract.Erc721Contract
	ens      ens.ENS
}

func New(e *echo.Echo, cfg *HandlerCfg) {
	handler := &transferHandler{
		transfer: cfg.Transfer,
		asset:    cfg.Asset,
		ens:      cfg.Ens,
	}
	var mws []echo.MiddlewareFunc
	if cfg.Auth != nil {
		mws = append(mws, cfg.Auth)
	}
	e.POST("/transfers", handler.create, mws...)
	if cfg.Asset != nil {
		e.GET("/assets/:assetId/owner", handler.getOwner, middleware.IsValidAssetId("assetId"))
	}
}

type createParams struct {
	Recipient string `json:"recipient" validate:"required"`
	AssetId   string `json:"assetId" validate:"required,assetid"`
}

// create transfers assetId to recipient and answers with the confirming event, null when none was found
func (h *transferHandler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		ctx.WithField("err", err).Warn("validate failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	assetId, _ := new(big.Int).SetString(p.AssetId, 10)

	recipient, err := h.recipient(ctx, p.Recipient)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	event, err := h.transfer.Transfer(ctx, recipient, assetId)
	if err != nil {
		ctx.WithField("err", err).Error("transfer.Transfer failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, event)
}

func (h *transferHandler) recipient(c ctx.Ctx, raw string) (domain.Address, error) {
	if h.ens == nil || !ens.IsName(raw) {
		return domain.Address(raw), nil
	}
	addr, err := h.ens.Resolve(c, raw)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidAddress
	}
	if err != nil {
		return "", &domain.TransportError{Op: "ens_resolve", Err: err}
	}
	return addr, nil
}

func (h *transferHandler) getOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	assetId, _ := new(big.Int).SetString(c.Param("assetId"), 10)
	owner, err := h.asset.OwnerOf(ctx, assetId)
	if err != nil {
		ctx.WithField("err", err).Error("asset.OwnerOf failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, owner)
}

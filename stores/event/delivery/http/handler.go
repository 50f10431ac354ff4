package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/delivery"
	"github.com/x-xyz/nfttransfer/base/log"
	"github.com/x-xyz/nfttransfer/domain"
)

type eventHandler struct {
	correlator domain.EventCorrelator
}

func New(e *echo.Echo, correlator domain.EventCorrelator) {
	handler := &eventHandler{
		correlator: correlator,
	}
	e.GET("/events/:name", handler.findEvent)
}

// filterParams are the optional arguments of a Transfer-shaped event
type filterParams struct {
	From    string `query:"from"`
	To      string `query:"to"`
	TokenId string `query:"tokenId"`
}

func (p *filterParams) toFilter() (domain.EventFilter, error) {
	f := domain.EventFilter{}
	for key, raw := range map[string]string{"from": p.From, "to": p.To} {
		if raw == "" {
			continue
		}
		addr := domain.Address(raw)
		if !addr.IsValid() {
			return nil, domain.ErrInvalidAddress
		}
		f[key] = domain.AddressValue(domain.ToAddress(addr.ToCommon()))
	}
	if p.TokenId != "" {
		n, ok := new(big.Int).SetString(p.TokenId, 10)
		if !ok || n.Sign() < 0 {
			return nil, domain.ErrInvalidAssetId
		}
		f["tokenId"] = domain.UintValue(n)
	}
	return f, nil
}

// findEvent answers with the first past event matching the query, null when none does
func (h *eventHandler) findEvent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &filterParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	filter, err := p.toFilter()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	name := c.Param("name")
	event, err := h.correlator.FindEvent(ctx, name, filter)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": name,
		}).Error("correlator.FindEvent failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, event)
}

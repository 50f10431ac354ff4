package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/base/delivery"
	hcdomain "github.com/x-xyz/nfttransfer/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New serves GET /health, 503 when the ledger node or mongo is unreachable
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/health", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		context.WithField("err", err).Warn("health check failed")
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

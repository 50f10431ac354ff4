package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

const OperatorKey = "operator"

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Auth requires "Authorization: Bearer <token>" and sets the operator on the echo context
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	bc, ok := c.Get("ctx").(ctx.Ctx)
	if !ok {
		bc = ctx.From(c.Request().Context())
	}
	if operator, err := m.auth.ParseToken(bc, key); err != nil {
		bc.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	} else {
		c.Set(OperatorKey, operator)
		c.Set("ctx", ctx.WithValue(bc, OperatorKey, operator))
		return true, nil
	}
}

package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/nfttransfer/base/ctx"
)

// OperatorClaims identifies who asked for a transfer
type OperatorClaims struct {
	Operator string `json:"operator"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken issues a bearer token for a configured operator holding apiKey
	SignToken(ctx ctx.Ctx, operator, apiKey string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (operator string, err error)
}

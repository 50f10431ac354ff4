package usecase

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

const defaultTokenTTL = 24 * time.Hour

type Cfg struct {
	JwtSecret string
	// Operators maps an operator name to its api key
	Operators map[string]string
	TokenTTL  time.Duration
}

type impl struct {
	jwtSecret []byte
	operators map[string]string
	ttl       time.Duration
}

func New(cfg *Cfg) domain.AuthUsecase {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &impl{
		jwtSecret: []byte(cfg.JwtSecret),
		operators: cfg.Operators,
		ttl:       ttl,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, operator, apiKey string) (string, error) {
	want, ok := im.operators[operator]
	if !ok || len(want) == 0 || subtle.ConstantTimeCompare([]byte(want), []byte(apiKey)) != 1 {
		ctx.WithField("operator", operator).Warn("unknown operator or wrong api key")
		return "", domain.ErrUnauthorized
	}

	claims := domain.OperatorClaims{
		Operator: operator,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(im.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.OperatorClaims); ok && token.Valid {
		if _, known := im.operators[claims.Operator]; !known {
			return "", domain.ErrUnauthorized
		}
		return claims.Operator, nil
	}

	return "", domain.ErrUnauthorized
}

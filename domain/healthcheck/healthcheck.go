package healthcheck

import (
	"github.com/x-xyz/nfttransfer/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo checks one dependency
type HealthCheckRepo interface {
	Ping(context ctx.Ctx) error
}

package usecase

import (
	"github.com/x-xyz/nfttransfer/base/ctx"
	hcdomain "github.com/x-xyz/nfttransfer/domain/healthcheck"
)

type impl struct {
	repos []hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repos ...hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repos: repos,
	}
}

// Check fails on the first unhealthy dependency
func (im *impl) Check(context ctx.Ctx) error {
	for _, r := range im.repos {
		if err := r.Ping(context); err != nil {
			return err
		}
	}
	return nil
}

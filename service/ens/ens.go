package ens

import (
	"strings"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

type ENS interface {
	// Resolve returns domain.ErrNotFound for an unregistered name
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}

// IsName reports whether s looks like an ENS name rather than a hex address
func IsName(s string) bool {
	return strings.Contains(s, ".") && !strings.HasPrefix(s, "0x") && !strings.HasSuffix(s, ".")
}

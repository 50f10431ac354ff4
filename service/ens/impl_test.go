package ens

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
)

type ensSuite struct {
	suite.Suite

	im ENS
}

func (s *ensSuite) SetupSuite() {
	im, err := Dial(ctx.Background(), os.Getenv("ENS_RPC_URL"))
	s.Require().NoError(err)
	s.im = im
}

// mainnet node required
func TestSuite(t *testing.T) {
	if testing.Short() || os.Getenv("ENS_RPC_URL") == "" {
		t.Skip()
	}
	suite.Run(t, new(ensSuite))
}

func (s *ensSuite) TestResolve() {
	addr, err := s.im.Resolve(ctx.Background(), "vitalik.eth")
	s.NoError(err)
	s.Equal(domain.Address("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"), addr)

	_, err = s.im.Resolve(ctx.Background(), "surely-not-registered-3f9a1c.eth")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ensSuite) TestReverseResolve() {
	name, err := s.im.ReverseResolve(ctx.Background(), "0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	s.NoError(err)
	s.Equal("vitalik.eth", name)
}

func TestIsName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"vitalik.eth", true},
		{"sub.name.eth", true},
		{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", false},
		{"eth.", false},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := IsName(tt.in); got != tt.want {
			t.Errorf("IsName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package repository

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/service/pinata"
)

type pinataMock struct {
	mock.Mock
}

func (m *pinataMock) PinJson(c bCtx.Ctx, value interface{}, opts ...pinata.Option) (string, error) {
	r := pinata.NewPinRequest(value, opts...)
	ret := m.Called(r.Content, r.Metadata)
	return ret.String(0), ret.Error(1)
}

func Test_pinataUploaderRepo_Upload(t *testing.T) {
	ctx := bCtx.Background()
	doc := []byte(`{"name":"token #1"}`)

	t.Run("pinned", func(t *testing.T) {
		req := require.New(t)
		p := new(pinataMock)
		p.On("PinJson", json.RawMessage(doc), &pinata.Metadata{Name: objectName(doc)}).Return("QmDoc", nil).Once()

		url, err := NewPinataUploaderRepo(p, "").Upload(ctx, doc)
		req.NoError(err)
		req.Equal("https://ipfs.io/ipfs/QmDoc", url)
		p.AssertExpectations(t)
	})

	t.Run("not json", func(t *testing.T) {
		p := new(pinataMock)
		_, err := NewPinataUploaderRepo(p, "").Upload(ctx, []byte("{"))
		require.ErrorIs(t, err, ErrInvalidJsonFormat)
		p.AssertNotCalled(t, "PinJson", mock.Anything, mock.Anything)
	})

	t.Run("pinata failure", func(t *testing.T) {
		p := new(pinataMock)
		p.On("PinJson", mock.Anything, mock.Anything).Return("", pinata.ErrRequestFailed).Once()
		_, err := NewPinataUploaderRepo(p, "").Upload(ctx, doc)
		require.True(t, errors.Is(err, pinata.ErrRequestFailed))
	})
}

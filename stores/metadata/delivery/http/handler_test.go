package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

func TestUpload(t *testing.T) {
	metadata := new(mocks.MetadataUseCase)
	metadata.On("Upload", mock.Anything, &domain.TokenMetadata{Name: "token #1"}).Return("https://ipfs.io/ipfs/QmDoc").Once()
	metadata.On("Upload", mock.Anything, &domain.TokenMetadata{Name: "broken"}).Return("").Once()

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, metadata)

	tests := []struct {
		body string
		code int
		want string
	}{
		{`{"name":"token #1"}`, http.StatusOK, `{"data":"https://ipfs.io/ipfs/QmDoc","status":"success"}`},
		{`{"name":"broken"}`, http.StatusBadGateway, `{"data":"metadata upload failed","status":"fail"}`},
		{`{"name":`, http.StatusBadRequest, `{"data":"Given Param is not valid","status":"fail"}`},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/metadata", strings.NewReader(tt.body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, r)
		require.Equal(t, tt.code, rec.Code, tt.body)
		require.JSONEq(t, tt.want, rec.Body.String())
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/nfttransfer/domain/mocks"
)

func TestAuth(t *testing.T) {
	auth := new(mocks.AuthUsecase)
	auth.On("ParseToken", mock.Anything, "good").Return("ops", nil)
	auth.On("ParseToken", mock.Anything, "bad").Return("", errors.New("signature is invalid"))

	e := echo.New()
	e.POST("/transfers", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(OperatorKey).(string))
	}, New(auth).Auth())

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"missing header", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/transfers", nil)
			if tt.header != "" {
				r.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, r)
			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				require.Equal(t, "ops", rec.Body.String())
			}
		})
	}
}

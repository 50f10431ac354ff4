package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// ErrorStatus maps domain errors onto http status codes, fallback is used
// for anything unrecognized
func ErrorStatus(err error, fallback int) int {
	var (
		signErr      *domain.SigningError
		submitErr    *domain.SubmissionError
		transportErr *domain.TransportError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidAssetId),
		errors.Is(err, domain.ErrBadParamInput), errors.Is(err, domain.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrWaitTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &signErr):
		return http.StatusBadRequest
	case errors.As(err, &submitErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = ErrorStatus(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

package response

import (
	"errors"
	"net/http"

	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ErrorResponse repeats the message under "error", which is the field the storefront
// frontend displays.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, statusCode int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Message = message
	resp.Data = data

	return c.JSON(statusCode, resp)
}

// WriteErrorResponse never exposes the cause of a 5xx to the client.
func WriteErrorResponse(c echo.Context, err error, details interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = details

	var validationErrs errs.ValidationErrors
	if details == nil && errors.As(err, &validationErrs) {
		resp.Errors = validationErrs
	}

	if statusCode >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Str("path", c.Path()).Msg("")
		resp.Message = errs.ErrInternalServer.Error()
		resp.Errors = nil
	}
	resp.Error = resp.Message

	return c.JSON(statusCode, resp)
}

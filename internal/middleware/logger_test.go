package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	e := echo.New()

	var ctxLogger *zerolog.Logger
	handler := Logger(func(c echo.Context) error {
		ctxLogger = log.Ctx(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("generates a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))

		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
		require.NotNil(t, ctxLogger)
		assert.NotEqual(t, zerolog.Disabled, ctxLogger.GetLevel())
	})

	t.Run("keeps an incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

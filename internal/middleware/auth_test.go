package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		userID, _, _ := utils.ExtractTokenUser(c)
		return c.String(http.StatusOK, userID)
	}, IsLoggedIn("secret"))

	valid, err := utils.CreateJWTToken("user-1", "Ram", "ext", "secret")
	require.NoError(t, err)
	forged, err := utils.CreateJWTToken("user-1", "Ram", "ext", "other")
	require.NoError(t, err)

	type TestCase struct {
		Name           string
		Header         string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []TestCase{
		{Name: "Valid token", Header: "Bearer " + valid, ExpectedStatus: http.StatusOK, ExpectedBody: "user-1"},
		{Name: "Wrong signature", Header: "Bearer " + forged, ExpectedStatus: http.StatusUnauthorized},
		{Name: "Missing token", ExpectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.Header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.Header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			if tc.ExpectedBody != "" {
				assert.Equal(t, tc.ExpectedBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "Invalid or expired JWT")
			}
		})
	}
}

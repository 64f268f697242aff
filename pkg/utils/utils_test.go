package utils

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	type TestCase struct {
		Name string
		In   string
		Out  string
	}

	testCases := []TestCase{
		{Name: "spaces", In: "T Shirts", Out: "t-shirts"},
		{Name: "whitespace run", In: "Summer \t Hoodies", Out: "summer-hoodies"},
		{Name: "single word", In: "Caps", Out: "caps"},
		{Name: "punctuation kept", In: "Kids' Wear", Out: "kids'-wear"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Out, Slugify(tc.In))
		})
	}
}

func TestBuildObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	key := BuildObjectKey("66f1c2a9e4b0a1b2c3d4e5f6", "Red", "frontImage-0", "shirt.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^products/66f1c2a9e4b0a1b2c3d4e5f6/Red/front-1700000000123-\d+\.PNG$`), key)

	key = BuildObjectKey("", "", "images", "photo.jpg", now)
	assert.Regexp(t, regexp.MustCompile(`^products/new/default/back-1700000000123-\d+\.jpg$`), key)
}

func TestViewFromField(t *testing.T) {
	assert.Equal(t, "front", ViewFromField("frontImage-2"))
	assert.Equal(t, "back", ViewFromField("backImage-2"))
	assert.Equal(t, "back", ViewFromField("image"))
}

func TestKeyFromURL(t *testing.T) {
	key := BuildObjectKey("abc", "Blue", "backImage-0", "b.png", time.Now())
	url := "https://bucket.s3.us-east-1.amazonaws.com/" + key

	assert.Equal(t, key, KeyFromURL(url))
	assert.Equal(t, "short/path", KeyFromURL("short/path"))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := CreateJWTToken("66f1c2a9e4b0a1b2c3d4e5f6", "Ada", "01HZX3", "secret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user", parsed)

	userID, name, externalID := ExtractTokenUser(c)
	assert.Equal(t, "66f1c2a9e4b0a1b2c3d4e5f6", userID)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, "01HZX3", externalID)

	claims := parsed.Claims.(jwt.MapClaims)
	exp := int64(claims["exp"].(float64))
	assert.InDelta(t, time.Now().Add(TokenTTL).Unix(), exp, 5)
}

func TestExtractTokenUserWithoutToken(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	userID, name, externalID := ExtractTokenUser(c)
	assert.Empty(t, userID)
	assert.Empty(t, name)
	assert.Empty(t, externalID)
}

func TestValidator(t *testing.T) {
	type item struct {
		Size     string `json:"size" validate:"required,oneof=XS S M L XL"`
		Quantity int    `json:"quantity" validate:"min=1"`
	}
	type request struct {
		CustomerName string `json:"customerName" validate:"required"`
		Items        []item `json:"items" validate:"required,min=1,dive"`
	}

	v := NewValidator()

	require.NoError(t, v.Validate(&request{CustomerName: "Ada", Items: []item{{Size: "M", Quantity: 1}}}))

	err := v.Validate(&request{Items: []item{{Size: "XXL", Quantity: 0}}})
	var validationErrs errs.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.EqualError(t, err, "customerName is required")
	assert.Equal(t, errs.ValidationErrors{
		{Field: "customerName", Tag: "required"},
		{Field: "size", Tag: "oneof"},
		{Field: "quantity", Tag: "min"},
	}, validationErrs)
}

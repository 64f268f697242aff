package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const TokenTTL = time.Hour * 24 * 30

func CreateJWTToken(userID string, userName string, externalID string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["externalID"] = externalID
	claims["exp"] = time.Now().Add(TokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUser reads the claims stored by echo's JWT middleware under "user".
func ExtractTokenUser(c echo.Context) (userID string, name string, externalID string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return "", "", ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ""
	}

	userID, _ = claims["userID"].(string)
	name, _ = claims["name"].(string)
	externalID, _ = claims["externalID"].(string)
	return userID, name, externalID
}

package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskboard/pkg/auth"
)

// JWT guards the board and task routes. Tokens are the HS256 bearer tokens
// issued by pkg/auth on signup and login.
func JWT(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: secret,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		},
	})
}

// UserID returns the authenticated user id stored in the request context by
// JWT, or 0 on unauthenticated routes.
func UserID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return 0
	}
	return claims.UserID
}

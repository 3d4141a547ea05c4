package echoapi

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/profile"
)

var (
	// appJWTConfig verifies the HS256 tokens issued by the authentication backend.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
	contextProfileKey = "profile"
)

// Claims represents the authorization claims transmitted via a JWT.
// The Subject is the user's ID, which is also their Profile ID.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"` // role in the authentication backend, not the Profile role
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextProfile returns the profile of the authenticated user, if they completed onboarding.
func getContextProfile(ctx echo.Context) (profile.Profile, bool) {
	p, ok := ctx.Get(contextProfileKey).(profile.Profile)
	return p, ok
}

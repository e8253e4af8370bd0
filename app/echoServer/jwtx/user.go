// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Maksim124512M/LibraFlow/model"
)

func UserIDFromContext(c echo.Context) (int64, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return 0, err
	}
	if f, ok := claims["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func ActorFromContext(c echo.Context) (model.Actor, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return model.Actor{}, err
	}
	f, ok := claims["sub"].(float64)
	if !ok {
		return model.Actor{}, errors.New("sub missing in claims")
	}
	role, _ := claims["role"].(string)
	return model.Actor{ID: int64(f), Role: model.ParseRole(role)}, nil
}

func claimsFromContext(c echo.Context) (jwt.MapClaims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return claims, nil
}

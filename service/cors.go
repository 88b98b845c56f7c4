package service

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type corsPolicy struct {
	methods string
	headers string
}

var (
	rsvpCORS   = corsPolicy{methods: "GET, POST, OPTIONS", headers: "Content-Type, X-Admin-Key"}
	mirrorCORS = corsPolicy{methods: "POST, OPTIONS", headers: "Content-Type"}
)

// allowAnyOrigin stamps every response with the wildcard origin header.
func allowAnyOrigin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
		return next(c)
	}
}

// preflight answers OPTIONS with an empty 200 body.
func preflight(c echo.Context, policy corsPolicy) error {
	h := c.Response().Header()
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlAllowMethods, policy.methods)
	h.Set(echo.HeaderAccessControlAllowHeaders, policy.headers)
	return c.NoContent(http.StatusOK)
}

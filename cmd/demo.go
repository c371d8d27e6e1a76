package main

import (
	"encoding/json"
	"net/http"

	"mymesh/handlers"
	"mymesh/service"

	"github.com/labstack/echo/v4"
)

// demoServer holds the sample routes this binary publishes to its peers.
type demoServer struct {
	name     string
	services *service.InvocationClient
}

// registerDemoRoutes declares the host routes. Route names are the logical names peers invoke. With
// verify set, body-carrying routes require a valid payload signature.
func registerDemoRoutes(e *echo.Echo, d *demoServer, verify *service.SecurityContext) {
	var mw []echo.MiddlewareFunc
	if verify != nil {
		mw = append(mw, handlers.VerifySignature(verify))
	}

	e.GET("/v1/profile/:id", d.getProfile).Name = "getProfile"
	e.POST("/v1/echo", d.echo, mw...).Name = "echo"
	e.POST("/v1/relay/:service/:route", d.relay).Name = "relay"
}

// getProfile (GET /v1/profile/:id) answers with a canned profile.
func (d *demoServer) getProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"id":       c.Param("id"),
		"servedBy": d.name,
	})
}

// echo (POST /v1/echo) returns the JSON body it received.
func (d *demoServer) echo(c echo.Context) error {
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	return c.JSON(http.StatusOK, body)
}

// relay (POST /v1/relay/:service/:route) invokes route on service with the JSON body as arguments and
// returns the peer's answer.
func (d *demoServer) relay(c echo.Context) error {
	args := service.Args{}
	if err := c.Bind(&args); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	// Bind also copies the path params.
	delete(args, "service")
	delete(args, "route")

	var out json.RawMessage
	if err := d.services.Service(c.Param("service")).Call(c.Request().Context(), c.Param("route"), args, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		return c.NoContent(http.StatusOK)
	}
	return c.JSONBlob(http.StatusOK, out)
}

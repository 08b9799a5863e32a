package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RMvanderGaag/find-a-buddy/internal/api/middleware"
)

// callerID returns the user id the Auth middleware injected. Its absence
// means the route was mounted without Auth; reject with 401 rather than
// querying as an anonymous user.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

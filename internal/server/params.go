package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recruitkit/crmbridge/internal/filter"
)

// parsePage reads limit/offset query parameters and validates them
// before any upstream call happens. Limit defaults to 100.
func parsePage(c echo.Context) (filter.Page, error) {
	page := filter.Page{Limit: 100}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		page.Limit = n
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, echo.NewHTTPError(http.StatusBadRequest, "offset must be an integer")
		}
		page.Offset = n
	}
	if err := page.Validate(); err != nil {
		return page, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return page, nil
}

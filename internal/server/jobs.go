package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruitkit/crmbridge/internal/filter"
)

// JobsHandler serves the filtered job listing.
type JobsHandler struct {
	Resolver *filter.Resolver
}

func (h *JobsHandler) Register(e *echo.Echo) {
	e.GET("/jobs", h.list)
}

func (h *JobsHandler) list(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	spec := filter.Spec{
		Tag:          c.QueryParam("tag"),
		CreatedBy:    c.QueryParam("created_by"),
		Owner:        c.QueryParam("owner"),
		JobType:      c.QueryParam("job_type"),
		PrimaryOwner: c.QueryParam("primary_owner"),
	}
	records := h.Resolver.Jobs(c.Request().Context(), spec, page)
	if records == nil {
		records = []filter.JobDisplay{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"records": records})
}

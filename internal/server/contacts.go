package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruitkit/crmbridge/internal/crm"
	"github.com/recruitkit/crmbridge/internal/filter"
)

// ContactsHandler serves the filtered contact listing (with the local
// snapshot fallback) and the artifact proxy.
type ContactsHandler struct {
	Resolver *filter.Resolver
	CRM      *crm.Client
}

func (h *ContactsHandler) Register(e *echo.Echo) {
	e.GET("/contacts", h.list)
	e.GET("/contacts/id/:id/artifacts", h.artifacts)
}

func (h *ContactsHandler) list(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	spec := filter.Spec{
		FullName:     c.QueryParam("full_name"),
		Tag:          c.QueryParam("tag"),
		CreatedBy:    c.QueryParam("created_by"),
		Owner:        c.QueryParam("owner"),
		PrimaryOwner: c.QueryParam("primary_owner"),
	}
	records := h.Resolver.Contacts(c.Request().Context(), spec, page)
	if records == nil {
		records = []filter.ContactDisplay{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"records": records})
}

// artifacts proxies the upstream artifact listing for one contact.
func (h *ContactsHandler) artifacts(c echo.Context) error {
	env, err := h.CRM.Artifacts(c.Request().Context(), c.Param("id"))
	if err != nil {
		var ce *crm.Error
		if errors.As(err, &ce) && ce.Kind == crm.KindRejected {
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error":       "Failed to retrieve artifacts",
				"status_code": ce.Status,
				"response":    ce.Body,
			})
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	artifacts := env.Data
	if len(artifacts) == 0 {
		artifacts = []byte("[]")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"artifacts": artifacts,
		"total":     env.Metadata.TotalRecords,
	})
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruitkit/crmbridge/internal/activity"
	"github.com/recruitkit/crmbridge/internal/crm"
)

// ActivitiesHandler serves the screen-activity write endpoints.
type ActivitiesHandler struct {
	Poster *activity.Poster
}

func (h *ActivitiesHandler) Register(e *echo.Echo) {
	e.POST("/post_screen_activity", h.postByID)
	e.POST("/post_screen_activity_by_name", h.postByName)
}

func (h *ActivitiesHandler) postByID(c echo.Context) error {
	var req struct {
		EntityID string `json:"EntityId"`
		Notes    string `json:"Notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.EntityID == "" || req.Notes == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required EntityId or Notes"})
	}

	resp, err := h.Poster.PostScreen(c.Request().Context(), req.EntityID, req.Notes)
	if err != nil {
		return postFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "response": resp})
}

func (h *ActivitiesHandler) postByName(c echo.Context) error {
	var req struct {
		FullName string `json:"FullName"`
		Notes    string `json:"Notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.FullName == "" || req.Notes == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required FullName or Notes"})
	}

	resp, err := h.Poster.PostScreenByName(c.Request().Context(), req.FullName, req.Notes)
	if err != nil {
		if errors.Is(err, activity.ErrContactNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("No contact found with full name '%s'", req.FullName),
			})
		}
		return postFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "response": resp})
}

// postFailure turns an upstream write failure into the structured
// error body; rejections keep the upstream status and raw response.
func postFailure(c echo.Context, err error) error {
	var ce *crm.Error
	if errors.As(err, &ce) && ce.Kind == crm.KindRejected {
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"error":       "Failed to post activity",
			"status_code": ce.Status,
			"response":    ce.Body,
		})
	}
	return echo.NewHTTPError(http.StatusBadGateway, err.Error())
}

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civic-reports/internal/http/middleware"
	"civic-reports/internal/model"
	"civic-reports/internal/service"
)

func (h *Handler) listReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	reports, err := h.reports.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reports))
}

func (h *Handler) listOwnReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	reports, err := h.reports.ListOwn(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reports))
}

func (h *Handler) createReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var body struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Latitude    *float64 `json:"latitude" binding:"required"`
		Longitude   *float64 `json:"longitude" binding:"required"`
		Address     *string  `json:"address,omitempty"`
		ImageURL    *string  `json:"image_url,omitempty"`
		Priority    string   `json:"priority,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	report, err := h.reports.Create(c.Request.Context(), principal, service.CreateReportInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    model.Category(body.Category),
		Latitude:    *body.Latitude,
		Longitude:   *body.Longitude,
		Address:     body.Address,
		ImageURL:    body.ImageURL,
		Priority:    model.Priority(body.Priority),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(report))
}

func (h *Handler) getReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	report, err := h.reports.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) updateReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	var body struct {
		Status               *string    `json:"status,omitempty"`
		Priority             *string    `json:"priority,omitempty"`
		AssignedDepartmentID *uuid.UUID `json:"assigned_department_id,omitempty"`
		AssignedToID         *uuid.UUID `json:"assigned_to_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateReportInput{
		AssignedDepartmentID: body.AssignedDepartmentID,
		AssignedToID:         body.AssignedToID,
	}
	if body.Status != nil {
		status := model.Status(*body.Status)
		input.Status = &status
	}
	if body.Priority != nil {
		priority := model.Priority(*body.Priority)
		input.Priority = &priority
	}

	report, err := h.reports.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) deleteReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	if err := h.reports.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getAnalytics(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	snapshot, err := h.analytics.Snapshot(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(snapshot))
}

// parseReportFilter reads the recognized listing parameters. Enum and id
// parameters reject the request when malformed; the geo parameters do
// not — coordinates that fail to parse (the radius included) silently
// drop the whole proximity clause while every other filter still applies.
func parseReportFilter(c *gin.Context) (model.ReportFilter, error) {
	filter := model.ReportFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
	}

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category := model.Category(raw)
		if !category.Valid() {
			return filter, fmt.Errorf("invalid category %q", raw)
		}
		filter.Category = &category
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.Status(raw)
		if !status.Valid() {
			return filter, fmt.Errorf("invalid status %q", raw)
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority := model.Priority(raw)
		if !priority.Valid() {
			return filter, fmt.Errorf("invalid priority %q", raw)
		}
		filter.Priority = &priority
	}
	if raw := strings.TrimSpace(c.Query("assigned_department")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid assigned_department %q", raw)
		}
		filter.DepartmentID = &id
	}

	latStr := strings.TrimSpace(c.Query("latitude"))
	lngStr := strings.TrimSpace(c.Query("longitude"))
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		radius, radiusErr := strconv.ParseFloat(c.DefaultQuery("radius", "5"), 64)
		if latErr == nil && lngErr == nil && radiusErr == nil {
			filter.Geo = &model.GeoFilter{Latitude: lat, Longitude: lng, RadiusKM: radius}
		}
	}

	return filter, nil
}

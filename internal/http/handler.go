package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"history-service/internal/http/middleware"
	"history-service/internal/model"
	"history-service/internal/service"
)

type Handler struct {
	history    *service.HistoryService
	stats      *service.StatsService
	comparison *service.ComparisonService
	log        zerolog.Logger
}

func NewHandler(history *service.HistoryService, stats *service.StatsService, comparison *service.ComparisonService, log zerolog.Logger) *Handler {
	return &Handler{history: history, stats: stats, comparison: comparison, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/history")
	protected.Use(authMiddleware)

	protected.GET("", h.listTimeline)
	protected.GET("/stats", h.getStatistics)
	protected.GET("/compare", h.compareVehicles)
}

func (h *Handler) listTimeline(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing principal"))
		return
	}

	filter, err := parseHistoryFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	page, err := h.history.ListTimeline(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(page))
}

func (h *Handler) getStatistics(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing principal"))
		return
	}

	req, err := parseStatsRequest(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	stats, err := h.stats.PeriodStatistics(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) compareVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing principal"))
		return
	}

	req, err := parseComparisonRequest(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	comparison, err := h.comparison.Compare(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(comparison))
}

func parseHistoryFilter(c *gin.Context) (model.HistoryFilter, error) {
	var filter model.HistoryFilter

	vehicleID, err := queryInt64(c, "vehicle_id")
	if err != nil {
		return filter, err
	}
	filter.VehicleID = vehicleID

	if s := strings.TrimSpace(c.Query("type")); s != "" {
		filter.Type = model.RecordType(s)
	}
	if s := strings.TrimSpace(c.Query("category")); s != "" {
		category := model.MaintenanceCategory(s)
		filter.Category = &category
	}
	if s := strings.TrimSpace(c.Query("fuel_type")); s != "" {
		fuelType := model.FuelType(s)
		filter.FuelType = &fuelType
	}

	filter.StartDate, err = queryDate(c, "start_date")
	if err != nil {
		return filter, err
	}
	filter.EndDate, err = queryDate(c, "end_date")
	if err != nil {
		return filter, err
	}
	filter.MinCost, err = queryFloat(c, "min_cost")
	if err != nil {
		return filter, err
	}
	filter.MaxCost, err = queryFloat(c, "max_cost")
	if err != nil {
		return filter, err
	}

	if s := strings.TrimSpace(c.Query("sort_by")); s != "" {
		filter.SortBy = model.SortKey(s)
	}
	if s := strings.TrimSpace(c.Query("sort_order")); s != "" {
		filter.SortOrder = model.SortOrder(s)
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return filter, err
	}
	if limit != nil {
		filter.Limit = *limit
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return filter, err
	}
	if offset != nil {
		filter.Offset = *offset
	}

	return filter, nil
}

func parseStatsRequest(c *gin.Context) (model.StatsRequest, error) {
	var req model.StatsRequest

	vehicleID, err := queryInt64(c, "vehicle_id")
	if err != nil {
		return req, err
	}
	req.VehicleID = vehicleID

	req.StartDate, err = queryDate(c, "start_date")
	if err != nil {
		return req, err
	}
	req.EndDate, err = queryDate(c, "end_date")
	if err != nil {
		return req, err
	}
	req.Period = model.PeriodPreset(strings.TrimSpace(c.Query("period")))

	return req, nil
}

func parseComparisonRequest(c *gin.Context) (model.ComparisonRequest, error) {
	var req model.ComparisonRequest

	raw := strings.TrimSpace(c.Query("vehicle_ids"))
	if raw == "" {
		return req, fmt.Errorf("%w: vehicle_ids is required", service.ErrInvalidArgument)
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: vehicle_ids must be a comma-separated list of numeric ids", service.ErrInvalidArgument)
		}
		req.VehicleIDs = append(req.VehicleIDs, id)
	}

	var err error
	req.StartDate, err = queryDate(c, "start_date")
	if err != nil {
		return req, err
	}
	req.EndDate, err = queryDate(c, "end_date")
	if err != nil {
		return req, err
	}
	req.Period = model.PeriodPreset(strings.TrimSpace(c.Query("period")))

	return req, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric", service.ErrInvalidArgument, name)
	}
	return &value, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric", service.ErrInvalidArgument, name)
	}
	return &value, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric", service.ErrInvalidArgument, name)
	}
	return &value, nil
}

// queryDate accepts a calendar date or a full RFC 3339 timestamp.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", s); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		return &parsed, nil
	}
	return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC 3339", service.ErrInvalidArgument, name)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, errorResponse("invalid_filter", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse("forbidden", err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal", "internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(code, message string) gin.H {
	return gin.H{"error": message, "code": code}
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the aggregation endpoints: category breakdown,
// period/monthly/yearly summaries and the spending trend.
type AnalyticsHandler struct {
	Store *store.Store
}

func NewAnalyticsHandler(s *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{Store: s}
}

// parseWindow reads required start/end date parameters.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start and end dates are required")
		return time.Time{}, time.Time{}, false
	}
	start, err := util.ParseDate(startStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return time.Time{}, time.Time{}, false
	}
	end, err := util.ParseDate(endStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Breakdown returns the per-category aggregation for a date window.
func (h *AnalyticsHandler) Breakdown(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	b, err := h.Store.CategoryBreakdown(user.ID, start, end)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"breakdown": b})
}

// Summary dispatches on the supplied parameters: ?year=YYYY gives a yearly
// summary, ?year=YYYY&month=M a monthly one, ?start&end a date-range one.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	switch {
	case yearStr != "" && monthStr != "":
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
			return
		}
		sum, err := h.Store.MonthlySummary(user.ID, year, time.Month(month))
		if err != nil {
			storeError(c, err)
			return
		}
		util.Success(c, util.Response{"summary": sum})

	case yearStr != "":
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return
		}
		sum, err := h.Store.YearlySummary(user.ID, year)
		if err != nil {
			storeError(c, err)
			return
		}
		util.Success(c, util.Response{"summary": sum})

	default:
		start, end, ok := parseWindow(c)
		if !ok {
			return
		}
		sum, err := h.Store.PeriodSummary(user.ID, start, end)
		if err != nil {
			storeError(c, err)
			return
		}
		util.Success(c, util.Response{"summary": sum})
	}
}

// Trend returns time-bucketed spending for a window. interval must be daily,
// weekly or monthly.
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}
	interval := c.DefaultQuery("interval", store.IntervalDaily)

	points, err := h.Store.SpendingTrend(user.ID, start, end, interval)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{
		"interval": interval,
		"points":   points,
	})
}

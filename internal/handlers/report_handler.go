package handlers

import (
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRange parses the optional from/to query parameters. Zero times mean
// unbounded.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := utils.ParseDateTime(v)
		if err != nil {
			return from, to, apperrors.Validation("Invalid from date")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := utils.ParseDateTime(v)
		if err != nil {
			return from, to, apperrors.Validation("Invalid to date")
		}
		to = parsed
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return from, to, apperrors.Validation("from must not be after to")
	}
	return from, to, nil
}

func (h *ReportHandler) BookingsReport(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	report, err := h.reportService.BookingsReport(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings report generated", report)
}

func (h *ReportHandler) RevenueReport(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	report, err := h.reportService.RevenueReport(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Revenue report generated", report)
}

func (h *ReportHandler) CarsReport(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	report, err := h.reportService.CarsReport(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cars report generated", report)
}

func (h *ReportHandler) UsersReport(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	report, err := h.reportService.UsersReport(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Users report generated", report)
}

package handlers

import (
	"bytes"
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/export"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/applications-overview", h.ApplicationsOverview)
		reports.GET("/interview-success-rate", h.InterviewSuccessRate)
		reports.GET("/time-to-hire", h.TimeToHire)
		reports.GET("/dashboard-summary", h.DashboardSummary)
		reports.GET("/dashboard-summary/export", h.ExportDashboardSummary)
	}
}

// ApplicationsOverview godoc
// @Summary Сводка по заявкам
// @Tags reports
// @Produce json
// @Param startDate query string false "RFC3339 или YYYY-MM-DD"
// @Param endDate query string false "RFC3339 или YYYY-MM-DD; дата без времени включает весь день"
// @Param jobPositionId query string false "ID вакансии"
// @Param department query string false "Отдел"
// @Success 200 {object} dto.ApplicationsOverview
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /reports/applications-overview [get]
func (h *ReportHandler) ApplicationsOverview(c *gin.Context) {
	var query dto.ReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	report, err := h.reportService.ApplicationsOverview(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// InterviewSuccessRate godoc
// @Summary Доля найма после интервью
// @Tags reports
// @Produce json
// @Param startDate query string false "RFC3339 или YYYY-MM-DD"
// @Param endDate query string false "RFC3339 или YYYY-MM-DD"
// @Param jobPositionId query string false "ID вакансии"
// @Param department query string false "Отдел"
// @Success 200 {object} dto.InterviewSuccessRate
// @Router /reports/interview-success-rate [get]
func (h *ReportHandler) InterviewSuccessRate(c *gin.Context) {
	var query dto.ReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	report, err := h.reportService.InterviewSuccessRate(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// TimeToHire godoc
// @Summary Время до найма
// @Tags reports
// @Produce json
// @Param startDate query string false "RFC3339 или YYYY-MM-DD"
// @Param endDate query string false "RFC3339 или YYYY-MM-DD"
// @Param jobPositionId query string false "ID вакансии"
// @Param department query string false "Отдел"
// @Success 200 {object} dto.TimeToHire
// @Router /reports/time-to-hire [get]
func (h *ReportHandler) TimeToHire(c *gin.Context) {
	var query dto.ReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	report, err := h.reportService.TimeToHire(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DashboardSummary godoc
// @Summary Все отчеты одним запросом
// @Tags reports
// @Produce json
// @Param startDate query string false "RFC3339 или YYYY-MM-DD"
// @Param endDate query string false "RFC3339 или YYYY-MM-DD"
// @Param jobPositionId query string false "ID вакансии"
// @Param department query string false "Отдел"
// @Success 200 {object} dto.DashboardSummary
// @Router /reports/dashboard-summary [get]
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	var query dto.ReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	summary, err := h.reportService.DashboardSummary(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportDashboardSummary godoc
// @Summary Выгрузить сводку в XLSX
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param startDate query string false "RFC3339 или YYYY-MM-DD"
// @Param endDate query string false "RFC3339 или YYYY-MM-DD"
// @Param jobPositionId query string false "ID вакансии"
// @Param department query string false "Отдел"
// @Success 200 {file} file
// @Router /reports/dashboard-summary/export [get]
func (h *ReportHandler) ExportDashboardSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	summary, err := h.reportService.DashboardSummary(ctx, h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDashboard(&buf, summary); err != nil {
		logger.CtxWithError(ctx, "Failed to build dashboard workbook", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(summary.GeneratedAt)+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

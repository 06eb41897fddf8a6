package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/api/dto"
	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/service"
)

// ReportHandler serves ad-hoc grouped reports and PDF exports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Query aggregates complaints in the requested window by the requested key.
func (h *ReportHandler) Query(c *fiber.Ctx) error {
	var req dto.ReportQueryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, end, err := req.Window()
	if err != nil {
		return err
	}

	series, err := h.reports.GroupedReport(c.UserContext(), start, end, domain.GroupKey(req.GroupBy))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportSeriesResponse(series))
}

// Export renders the grouped report as a downloadable PDF. An empty window
// yields a NO_DATA error and no file.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var req dto.ReportExportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, end, err := req.Window()
	if err != nil {
		return err
	}

	pdf, filename, err := h.reports.ExportPDF(c.UserContext(), start, end,
		domain.GroupKey(req.GroupBy), domain.ChartType(req.ChartType), req.LogScale)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

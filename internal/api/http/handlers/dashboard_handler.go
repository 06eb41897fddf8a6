package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/api/dto"
	"github.com/qmdesk/complaint-service/internal/service"
)

// DashboardHandler serves the landing-page summary endpoints.
type DashboardHandler struct {
	reports    *service.ReportService
	complaints *service.ComplaintService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(reports *service.ReportService, complaints *service.ComplaintService) *DashboardHandler {
	return &DashboardHandler{reports: reports, complaints: complaints}
}

// Stats returns the fixed dashboard summary.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reports.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardResponse(stats))
}

// RecentComplaints returns the five most recent complaints.
func (h *DashboardHandler) RecentComplaints(c *fiber.Ctx) error {
	details, err := h.complaints.Recent(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse{Data: dto.NewComplaintDetailResponses(details)})
}

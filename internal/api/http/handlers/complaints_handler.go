package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/api/dto"
	"github.com/qmdesk/complaint-service/internal/service"
)

// ComplaintHandler serves complaint CRUD.
type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintHandler constructs the handler.
func NewComplaintHandler(complaints *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// List returns all complaints newest first with dimension names resolved.
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	details, err := h.complaints.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse{Data: dto.NewComplaintDetailResponses(details)})
}

// Get fetches one complaint by id.
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	complaint, err := h.complaints.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// Create records a new complaint authored by the caller.
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	author, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ComplaintRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return err
	}

	complaint, err := h.complaints.Create(c.UserContext(), author, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// Update rewrites an existing complaint.
func (h *ComplaintHandler) Update(c *fiber.Ctx) error {
	author, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.ComplaintRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return err
	}

	complaint, err := h.complaints.Update(c.UserContext(), author, id, in)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// Delete removes a complaint. Dimension rows referenced by it stay.
func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	author, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.complaints.Delete(c.UserContext(), author, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

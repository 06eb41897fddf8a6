// Package handlers contains the fiber request handlers. Handlers only parse,
// delegate to a service and render; errors bubble to the central error
// handler untouched.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/auth"
	"github.com/qmdesk/complaint-service/internal/domain"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("érvénytelen azonosító", nil)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("hibás kérés", nil)
	}
	return nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

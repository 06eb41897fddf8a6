package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qmdesk/complaint-service/internal/api/dto"
	"github.com/qmdesk/complaint-service/internal/repository"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

// URL segment to dimension table. Roles are deliberately absent: they are an
// admin concern served under /users/roles.
var dimensionRoutes = map[string]string{
	"departments":  repository.TableDepartments,
	"customers":    repository.TableCustomers,
	"products":     repository.TableProducts,
	"defect-types": repository.TableDefectTypes,
	"statuses":     repository.TableStatuses,
	"positions":    repository.TablePositions,
}

// LookupHandler lists dimension rows for form dropdowns.
type LookupHandler struct {
	repos map[string]repository.LookupRepository
}

// NewLookupHandler builds one repository per exposed dimension.
func NewLookupHandler(pool *pgxpool.Pool) *LookupHandler {
	repos := make(map[string]repository.LookupRepository, len(dimensionRoutes))
	for segment, table := range dimensionRoutes {
		repos[segment] = repository.NewLookupRepository(pool, table)
	}
	return &LookupHandler{repos: repos}
}

// List returns the rows of one dimension ordered by display name.
func (h *LookupHandler) List(c *fiber.Ctx) error {
	repo, ok := h.repos[c.Params("dimension")]
	if !ok {
		return apperrors.NewNotFound("dimension", map[string]any{"dimension": c.Params("dimension")})
	}

	rows, err := repo.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.LookupResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *dto.NewLookupResponse(&rows[i]))
	}
	return c.JSON(dto.DataResponse{Data: out})
}

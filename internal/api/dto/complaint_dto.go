package dto

import (
	"time"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/repository"
	"github.com/qmdesk/complaint-service/internal/service"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// ComplaintRequest payload for creating or updating a complaint. The five
// dimension fields accept either an existing row id or free text for a new
// label; empty means no association. Dates travel as YYYY-MM-DD strings.
type ComplaintRequest struct {
	ComplaintDate     string   `json:"complaint_date"`
	ComplaintNumber   string   `json:"complaint_number"`
	ProductIdentifier string   `json:"product_identifier"`
	Quantity          int      `json:"quantity"`
	RequiresReturn    bool     `json:"requires_return"`
	Description       string   `json:"description"`
	ShippingDate      string   `json:"shipping_date"`
	TotalCost         *float64 `json:"total_cost"`
	Department        string   `json:"department"`
	Customer          string   `json:"customer"`
	Product           string   `json:"product"`
	DefectType        string   `json:"defect_type"`
	Status            string   `json:"status"`
}

// ToInput converts the wire payload into a service input. Malformed dates are
// rejected here; field presence checks stay with the service rules.
func (r ComplaintRequest) ToInput() (service.ComplaintInput, error) {
	in := service.ComplaintInput{
		ComplaintNumber:   r.ComplaintNumber,
		ProductIdentifier: r.ProductIdentifier,
		Quantity:          r.Quantity,
		RequiresReturn:    r.RequiresReturn,
		Description:       r.Description,
		TotalCost:         r.TotalCost,
		Dimensions: repository.DimensionInputs{
			Department: r.Department,
			Customer:   r.Customer,
			Product:    r.Product,
			DefectType: r.DefectType,
			Status:     r.Status,
		},
	}

	if r.ComplaintDate != "" {
		parsed, err := time.Parse(dateLayout, r.ComplaintDate)
		if err != nil {
			return in, apperrors.NewValidationError("érvénytelen dátumformátum", map[string]any{"complaint_date": r.ComplaintDate})
		}
		in.ComplaintDate = parsed
	}
	if r.ShippingDate != "" {
		parsed, err := time.Parse(dateLayout, r.ShippingDate)
		if err != nil {
			return in, apperrors.NewValidationError("érvénytelen dátumformátum", map[string]any{"shipping_date": r.ShippingDate})
		}
		in.ShippingDate = &parsed
	}
	return in, nil
}

// ComplaintResponse is the stored record with raw foreign keys.
type ComplaintResponse struct {
	ID                int64    `json:"id"`
	ComplaintDate     string   `json:"complaint_date"`
	ComplaintNumber   string   `json:"complaint_number"`
	ProductIdentifier string   `json:"product_identifier"`
	Quantity          int      `json:"quantity"`
	RequiresReturn    bool     `json:"requires_return"`
	Description       string   `json:"description"`
	ShippingDate      *string  `json:"shipping_date"`
	TotalCost         float64  `json:"total_cost"`
	UserID            int64    `json:"user_id"`
	DepartmentID      *int64   `json:"department_id"`
	CustomerID        *int64   `json:"customer_id"`
	ProductID         *int64   `json:"product_id"`
	DefectTypeID      *int64   `json:"defect_type_id"`
	StatusID          *int64   `json:"status_id"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:                c.ID,
		ComplaintDate:     c.ComplaintDate.Format(dateLayout),
		ComplaintNumber:   c.ComplaintNumber,
		ProductIdentifier: c.ProductIdentifier,
		Quantity:          c.Quantity,
		RequiresReturn:    c.RequiresReturn,
		Description:       c.Description,
		TotalCost:         c.TotalCost,
		UserID:            c.UserID,
		DepartmentID:      c.DepartmentID,
		CustomerID:        c.CustomerID,
		ProductID:         c.ProductID,
		DefectTypeID:      c.DefectTypeID,
		StatusID:          c.StatusID,
	}
	if c.ShippingDate != nil {
		formatted := c.ShippingDate.Format(dateLayout)
		resp.ShippingDate = &formatted
	}
	return resp
}

// ComplaintDetailResponse is the list/recent shape: every reference replaced
// by its display name, missing values by "-". Status carries the canonical
// name so clients can match against it.
type ComplaintDetailResponse struct {
	ID                int64   `json:"id"`
	Date              string  `json:"date"`
	Customer          string  `json:"customer"`
	ProductName       string  `json:"product_name"`
	ProductIdentifier string  `json:"product_id"`
	Defect            string  `json:"defect"`
	Quantity          int     `json:"quantity"`
	Status            string  `json:"status"`
	ComplaintNumber   string  `json:"complaint_number"`
	Department        string  `json:"department"`
	RequiresReturn    bool    `json:"requires_return"`
	ShippingDate      string  `json:"shipping_date"`
	Cost              float64 `json:"cost"`
	User              string  `json:"user"`
}

// DataResponse wraps list payloads.
type DataResponse struct {
	Data any `json:"data"`
}

// NewComplaintDetailResponses maps joined rows, always returning a non-nil
// slice so empty lists encode as [] rather than null.
func NewComplaintDetailResponses(details []domain.ComplaintDetail) []ComplaintDetailResponse {
	out := make([]ComplaintDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ComplaintDetailResponse{
			ID:                d.ID,
			Date:              d.ComplaintDate.Format(dateLayout),
			Customer:          orDash(d.Customer),
			ProductName:       orDash(d.Product),
			ProductIdentifier: d.ProductIdentifier,
			Defect:            orDash(d.DefectType),
			Quantity:          d.Quantity,
			Status:            orDash(d.StatusName),
			ComplaintNumber:   d.ComplaintNumber,
			Department:        orDash(d.Department),
			RequiresReturn:    d.RequiresReturn,
			ShippingDate:      formatOptionalDate(d.ShippingDate),
			Cost:              d.TotalCost,
			User:              orDash(d.AuthorName),
		})
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

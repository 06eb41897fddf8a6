package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/qmdesk/complaint-service/internal/repository"
)

// FieldError is one field-level validation outcome, surfaced back to the
// submitter. Messages are user-facing and therefore Hungarian.
type FieldError struct {
	Field   string
	Message string
}

// ComplaintInput is the candidate payload for creating or editing a
// complaint. TotalCost may be absent and defaults to zero.
type ComplaintInput struct {
	ComplaintDate     time.Time
	ComplaintNumber   string
	ProductIdentifier string
	Quantity          int
	RequiresReturn    bool
	Description       string
	ShippingDate      *time.Time
	TotalCost         *float64
	Dimensions        repository.DimensionInputs
}

// Cost returns the effective total cost, substituting zero when absent.
func (in ComplaintInput) Cost() float64 {
	if in.TotalCost == nil {
		return 0
	}
	return *in.TotalCost
}

// UserInput is the candidate payload for creating or editing a user account.
// Password is only considered on create.
type UserInput struct {
	Surname  string
	Forename string
	Username string
	Email    string
	Password string
	RoleID   int64
	Position string
}

// A rule is a pure check from candidate input to an optional message. Rules
// never touch storage; uniqueness checks with self-exclusion run in the
// service on top of these.
type complaintRule struct {
	field string
	check func(in ComplaintInput) string
}

type userRule struct {
	field string
	check func(in UserInput) string
}

const msgRequired = "Kötelező mező"

var complaintRules = []complaintRule{
	{"complaint_date", func(in ComplaintInput) string {
		if in.ComplaintDate.IsZero() {
			return msgRequired
		}
		return ""
	}},
	{"complaint_number", func(in ComplaintInput) string {
		if strings.TrimSpace(in.ComplaintNumber) == "" {
			return msgRequired
		}
		return ""
	}},
	{"product_identifier", func(in ComplaintInput) string {
		if strings.TrimSpace(in.ProductIdentifier) == "" {
			return msgRequired
		}
		return ""
	}},
	{"quantity", func(in ComplaintInput) string {
		if in.Quantity < 1 {
			return "A mennyiségnek legalább 1-nek kell lennie"
		}
		return ""
	}},
	{"total_cost", func(in ComplaintInput) string {
		if in.TotalCost != nil && *in.TotalCost < 0 {
			return "A költség nem lehet negatív"
		}
		return ""
	}},
}

var userRules = []userRule{
	{"surname", func(in UserInput) string {
		if strings.TrimSpace(in.Surname) == "" {
			return msgRequired
		}
		return ""
	}},
	{"forename", func(in UserInput) string {
		if strings.TrimSpace(in.Forename) == "" {
			return msgRequired
		}
		return ""
	}},
	{"username", func(in UserInput) string {
		trimmed := strings.TrimSpace(in.Username)
		if trimmed == "" {
			return msgRequired
		}
		if len(trimmed) < 2 || len(trimmed) > 20 {
			return "A felhasználónév hossza 2 és 20 karakter között lehet"
		}
		return ""
	}},
	{"email", func(in UserInput) string {
		if strings.TrimSpace(in.Email) == "" {
			return msgRequired
		}
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return "A megadott email cím formailag nem megfelelő"
		}
		return ""
	}},
	{"role_id", func(in UserInput) string {
		if in.RoleID <= 0 {
			return msgRequired
		}
		return ""
	}},
}

func checkComplaint(in ComplaintInput) []FieldError {
	var errs []FieldError
	for _, rule := range complaintRules {
		if msg := rule.check(in); msg != "" {
			errs = append(errs, FieldError{Field: rule.field, Message: msg})
		}
	}
	return errs
}

func checkUser(in UserInput, requirePassword bool) []FieldError {
	var errs []FieldError
	for _, rule := range userRules {
		if msg := rule.check(in); msg != "" {
			errs = append(errs, FieldError{Field: rule.field, Message: msg})
		}
	}
	if requirePassword && strings.TrimSpace(in.Password) == "" {
		errs = append(errs, FieldError{Field: "password", Message: msgRequired})
	}
	return errs
}

func fieldErrorDetails(errs []FieldError) map[string]any {
	details := make(map[string]any, len(errs))
	for _, fe := range errs {
		details[fe.Field] = fe.Message
	}
	return details
}

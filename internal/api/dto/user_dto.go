package dto

import "github.com/qmdesk/complaint-service/internal/domain"

// UserRequest payload for creating or updating an account. Position is a
// dynamic value: an existing position id or free text for a new label.
type UserRequest struct {
	Surname  string `json:"surname"`
	Forename string `json:"forename"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	RoleID   int64  `json:"role_id"`
	Position string `json:"position"`
}

// LookupResponse is a dimension row.
type LookupResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID       int64           `json:"id"`
	Surname  string          `json:"surname"`
	Forename string          `json:"forename"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     *LookupResponse `json:"role,omitempty"`
	Position *LookupResponse `json:"position,omitempty"`
}

// NewLookupResponse maps a lookup row, nil-safe.
func NewLookupResponse(row *domain.Lookup) *LookupResponse {
	if row == nil {
		return nil
	}
	return &LookupResponse{ID: row.ID, Name: row.Name, DisplayName: row.DisplayName}
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Surname:  user.Surname,
		Forename: user.Forename,
		Username: user.Username,
		Email:    user.Email,
		Role:     NewLookupResponse(user.Role),
		Position: NewLookupResponse(user.Position),
	}
}

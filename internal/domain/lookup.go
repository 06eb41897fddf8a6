package domain

// Lookup is a normalized dimension row referenced by complaints and users.
// Name is the canonical slug (unique), DisplayName the free text the label
// was first entered as. Two display names that slugify identically resolve
// to the same row; the first writer wins.
type Lookup struct {
	ID          int64
	Name        string
	DisplayName string
}

// Role canonical names seeded by the migrations.
const (
	RoleAdmin     = "admin"
	RoleSuperUser = "superuser"
	RoleUser      = "user"
)

// StatusRejected is the canonical name of the one status excluded from the
// active dashboard aggregates.
const StatusRejected = "elutasitva"

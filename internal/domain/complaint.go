package domain

import "time"

// Complaint is the central record of the system. The six references (author
// plus five dimensions) are stored as foreign keys; a missing association is
// NULL. Deleting a complaint never cascades to the shared dimension rows.
type Complaint struct {
	ID                int64
	ComplaintDate     time.Time
	ComplaintNumber   string
	ProductIdentifier string
	Quantity          int
	RequiresReturn    bool
	Description       string
	ShippingDate      *time.Time
	TotalCost         float64
	UserID            int64
	DepartmentID      *int64
	CustomerID        *int64
	ProductID         *int64
	DefectTypeID      *int64
	StatusID          *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ComplaintDetail is a complaint joined with the display names of its
// references, the shape lists and the recent-complaints API are built from.
type ComplaintDetail struct {
	ID                int64
	ComplaintDate     time.Time
	ComplaintNumber   string
	ProductIdentifier string
	Quantity          int
	RequiresReturn    bool
	Description       string
	ShippingDate      *time.Time
	TotalCost         float64
	Department        string
	Customer          string
	Product           string
	DefectType        string
	Status            string
	StatusName        string
	AuthorName        string
}

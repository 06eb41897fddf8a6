package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qmdesk/complaint-service/internal/domain"
)

// DimensionInputs carries the raw categorical form values of a complaint:
// either an existing row id or free text for a new label, empty for no
// association.
type DimensionInputs struct {
	Department string
	Customer   string
	Product    string
	DefectType string
	Status     string
}

// ComplaintRepository encapsulates complaint persistence.
//
// CreateWithDimensions and UpdateWithDimensions run the dimension resolution
// and the complaint write in one transaction: a failed commit rolls back any
// dimension row staged for the request, so no orphaned label survives.
type ComplaintRepository interface {
	CreateWithDimensions(ctx context.Context, complaint *domain.Complaint, dims DimensionInputs) error
	UpdateWithDimensions(ctx context.Context, complaint *domain.Complaint, dims DimensionInputs) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListDetails(ctx context.Context) ([]domain.ComplaintDetail, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ComplaintDetail, error)
	NumberExists(ctx context.Context, number string, excludeID int64) (bool, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) CreateWithDimensions(ctx context.Context, complaint *domain.Complaint, dims DimensionInputs) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := resolveDimensions(ctx, tx, complaint, dims); err != nil {
		return err
	}

	const query = `
        INSERT INTO complaints (complaint_date, complaint_number, product_identifier, quantity,
            requires_return, description, shipping_date, total_cost, user_id,
            department_id, customer_id, product_id, defect_type_id, status_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		complaint.ComplaintDate,
		complaint.ComplaintNumber,
		complaint.ProductIdentifier,
		complaint.Quantity,
		complaint.RequiresReturn,
		complaint.Description,
		complaint.ShippingDate,
		complaint.TotalCost,
		complaint.UserID,
		complaint.DepartmentID,
		complaint.CustomerID,
		complaint.ProductID,
		complaint.DefectTypeID,
		complaint.StatusID,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *complaintRepository) UpdateWithDimensions(ctx context.Context, complaint *domain.Complaint, dims DimensionInputs) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := resolveDimensions(ctx, tx, complaint, dims); err != nil {
		return err
	}

	const query = `
        UPDATE complaints SET complaint_date=$1, complaint_number=$2, product_identifier=$3,
            quantity=$4, requires_return=$5, description=$6, shipping_date=$7, total_cost=$8,
            department_id=$9, customer_id=$10, product_id=$11, defect_type_id=$12, status_id=$13,
            updated_at=NOW()
        WHERE id=$14`
	cmd, err := tx.Exec(ctx, query,
		complaint.ComplaintDate,
		complaint.ComplaintNumber,
		complaint.ProductIdentifier,
		complaint.Quantity,
		complaint.RequiresReturn,
		complaint.Description,
		complaint.ShippingDate,
		complaint.TotalCost,
		complaint.DepartmentID,
		complaint.CustomerID,
		complaint.ProductID,
		complaint.DefectTypeID,
		complaint.StatusID,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// resolveDimensions runs the five categorical inputs through transaction
// scoped resolvers and writes the resulting foreign keys onto the complaint.
func resolveDimensions(ctx context.Context, tx pgx.Tx, complaint *domain.Complaint, dims DimensionInputs) error {
	fields := []struct {
		table string
		input string
		dest  **int64
	}{
		{TableDepartments, dims.Department, &complaint.DepartmentID},
		{TableCustomers, dims.Customer, &complaint.CustomerID},
		{TableProducts, dims.Product, &complaint.ProductID},
		{TableDefectTypes, dims.DefectType, &complaint.DefectTypeID},
		{TableStatuses, dims.Status, &complaint.StatusID},
	}

	for _, f := range fields {
		resolver := NewDimensionResolver(NewLookupRepository(tx, f.table))
		row, err := resolver.Resolve(ctx, f.input)
		if err != nil {
			return err
		}
		*f.dest = lookupID(row)
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, id int64) error {
	// Dimension rows are shared; deleting a complaint never cascades to them.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	const query = `
        SELECT id, complaint_date, complaint_number, product_identifier, quantity,
               requires_return, description, shipping_date, total_cost, user_id,
               department_id, customer_id, product_id, defect_type_id, status_id,
               created_at, updated_at
        FROM complaints WHERE id=$1`
	var c domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ComplaintDate,
		&c.ComplaintNumber,
		&c.ProductIdentifier,
		&c.Quantity,
		&c.RequiresReturn,
		&c.Description,
		&c.ShippingDate,
		&c.TotalCost,
		&c.UserID,
		&c.DepartmentID,
		&c.CustomerID,
		&c.ProductID,
		&c.DefectTypeID,
		&c.StatusID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

const detailSelect = `
        SELECT c.id, c.complaint_date, c.complaint_number, c.product_identifier, c.quantity,
               c.requires_return, c.description, c.shipping_date, c.total_cost,
               COALESCE(d.display_name, ''), COALESCE(cu.display_name, ''),
               COALESCE(p.display_name, ''), COALESCE(df.display_name, ''),
               COALESCE(s.display_name, ''), COALESCE(s.name, ''),
               u.surname || ' ' || u.forename
        FROM complaints c
        JOIN users u ON u.id = c.user_id
        LEFT JOIN departments d ON d.id = c.department_id
        LEFT JOIN customers cu ON cu.id = c.customer_id
        LEFT JOIN products p ON p.id = c.product_id
        LEFT JOIN defect_types df ON df.id = c.defect_type_id
        LEFT JOIN statuses s ON s.id = c.status_id`

func (r *complaintRepository) ListDetails(ctx context.Context) ([]domain.ComplaintDetail, error) {
	rows, err := r.pool.Query(ctx, detailSelect+` ORDER BY c.complaint_date DESC, c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *complaintRepository) ListRecent(ctx context.Context, limit int) ([]domain.ComplaintDetail, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, detailSelect+` ORDER BY c.complaint_date DESC, c.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *complaintRepository) NumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM complaints WHERE complaint_number=$1 AND id<>$2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, number, excludeID).Scan(&exists)
	return exists, err
}

func scanDetails(rows pgx.Rows) ([]domain.ComplaintDetail, error) {
	var result []domain.ComplaintDetail
	for rows.Next() {
		var d domain.ComplaintDetail
		if err := rows.Scan(
			&d.ID,
			&d.ComplaintDate,
			&d.ComplaintNumber,
			&d.ProductIdentifier,
			&d.Quantity,
			&d.RequiresReturn,
			&d.Description,
			&d.ShippingDate,
			&d.TotalCost,
			&d.Department,
			&d.Customer,
			&d.Product,
			&d.DefectType,
			&d.Status,
			&d.StatusName,
			&d.AuthorName,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

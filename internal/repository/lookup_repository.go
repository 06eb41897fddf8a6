package repository

import (
	"context"
	"fmt"

	"github.com/qmdesk/complaint-service/internal/domain"
)

// Dimension table names. All share the {id, name, display_name} shape; the
// name column carries the canonical slug and is unique.
const (
	TableRoles       = "roles"
	TablePositions   = "positions"
	TableDepartments = "departments"
	TableCustomers   = "customers"
	TableProducts    = "products"
	TableDefectTypes = "defect_types"
	TableStatuses    = "statuses"
)

// DimensionTable reports whether name is one of the complaint/user dimension
// tables, guarding the table-name interpolation below.
func DimensionTable(name string) bool {
	switch name {
	case TableRoles, TablePositions, TableDepartments, TableCustomers,
		TableProducts, TableDefectTypes, TableStatuses:
		return true
	}
	return false
}

// LookupRepository manages one dimension table.
type LookupRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lookup, error)
	GetByName(ctx context.Context, name string) (*domain.Lookup, error)
	Insert(ctx context.Context, row *domain.Lookup) error
	List(ctx context.Context) ([]domain.Lookup, error)
}

type lookupRepository struct {
	q     Querier
	table string
}

// NewLookupRepository builds a repository bound to one of the dimension
// tables. The querier may be a pool or an open transaction; rows inserted
// through a transaction-bound repository live and die with that transaction.
// Panics on an unknown table name: the set is closed and compile-time known.
func NewLookupRepository(q Querier, table string) LookupRepository {
	if !DimensionTable(table) {
		panic(fmt.Sprintf("repository: not a dimension table: %q", table))
	}
	return &lookupRepository{q: q, table: table}
}

func (r *lookupRepository) GetByID(ctx context.Context, id int64) (*domain.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, name, display_name FROM %s WHERE id=$1`, r.table)
	var row domain.Lookup
	if err := r.q.QueryRow(ctx, query, id).Scan(&row.ID, &row.Name, &row.DisplayName); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *lookupRepository) GetByName(ctx context.Context, name string) (*domain.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, name, display_name FROM %s WHERE name=$1`, r.table)
	var row domain.Lookup
	if err := r.q.QueryRow(ctx, query, name).Scan(&row.ID, &row.Name, &row.DisplayName); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *lookupRepository) Insert(ctx context.Context, row *domain.Lookup) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (name, display_name)
        VALUES ($1,$2)
        RETURNING id`, r.table)
	return r.q.QueryRow(ctx, query, row.Name, row.DisplayName).Scan(&row.ID)
}

func (r *lookupRepository) List(ctx context.Context) ([]domain.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, name, display_name FROM %s ORDER BY display_name`, r.table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lookup
	for rows.Next() {
		var row domain.Lookup
		if err := rows.Scan(&row.ID, &row.Name, &row.DisplayName); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

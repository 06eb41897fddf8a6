package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qmdesk/complaint-service/internal/domain"
)

// UserRepository defines persistence access for staff accounts.
//
// Create and Update resolve the free-form position input through the
// dimension resolver inside the same transaction as the user row, so a newly
// typed position label never survives a failed user write.
type UserRepository interface {
	CreateWithPosition(ctx context.Context, user *domain.User, positionInput string) error
	UpdateWithPosition(ctx context.Context, user *domain.User, positionInput string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateWithPosition(ctx context.Context, user *domain.User, positionInput string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	resolver := NewDimensionResolver(NewLookupRepository(tx, TablePositions))
	position, err := resolver.Resolve(ctx, positionInput)
	if err != nil {
		return err
	}
	user.Position = position
	user.PositionID = lookupID(position)

	const query = `
        INSERT INTO users (surname, forename, username, email, password_hash, role_id, position_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		user.Surname,
		user.Forename,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.PositionID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) UpdateWithPosition(ctx context.Context, user *domain.User, positionInput string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	resolver := NewDimensionResolver(NewLookupRepository(tx, TablePositions))
	position, err := resolver.Resolve(ctx, positionInput)
	if err != nil {
		return err
	}
	user.Position = position
	user.PositionID = lookupID(position)

	const query = `
        UPDATE users SET surname=$1, forename=$2, username=$3, email=$4, role_id=$5, position_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := tx.Exec(ctx, query,
		user.Surname,
		user.Forename,
		user.Username,
		user.Email,
		user.RoleID,
		user.PositionID,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const userSelect = `
        SELECT u.id, u.surname, u.forename, u.username, u.email, u.password_hash,
               u.role_id, u.position_id, u.created_at, u.updated_at,
               r.id, r.name, r.display_name,
               p.id, p.name, p.display_name
        FROM users u
        JOIN roles r ON r.id = u.role_id
        LEFT JOIN positions p ON p.id = u.position_id`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.email=$1`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, userSelect+` ORDER BY u.surname, u.forename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1 AND id<>$2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, username, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1 AND id<>$2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user        domain.User
		role        domain.Lookup
		posID       *int64
		posName     *string
		posDisplay  *string
	)
	if err := row.Scan(
		&user.ID,
		&user.Surname,
		&user.Forename,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.PositionID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&role.ID,
		&role.Name,
		&role.DisplayName,
		&posID,
		&posName,
		&posDisplay,
	); err != nil {
		return nil, err
	}
	user.Role = &role
	if posID != nil {
		user.Position = &domain.Lookup{ID: *posID, Name: *posName, DisplayName: *posDisplay}
	}
	return &user, nil
}

func lookupID(row *domain.Lookup) *int64 {
	if row == nil {
		return nil
	}
	id := row.ID
	return &id
}

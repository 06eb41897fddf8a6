package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/qmdesk/complaint-service/internal/auth"
	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/events"
	"github.com/qmdesk/complaint-service/internal/repository"
	"github.com/qmdesk/complaint-service/pkg/util"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

// UserService implements administrator account management.
type UserService struct {
	users      repository.UserRepository
	roles      repository.LookupRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, roles repository.LookupRepository, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		roles:      roles,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Create registers a new account. The free-form position label goes through
// the dimension resolver inside the user transaction; names are stored
// title-cased.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	errs, role, err := s.validate(ctx, in, 0, true)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError("érvénytelen adatok", fieldErrorDetails(errs))
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Surname:      util.TitleCase(in.Surname),
		Forename:     util.TitleCase(in.Forename),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         role,
	}

	if err := s.users.CreateWithPosition(ctx, user, in.Position); err != nil {
		s.logger.Error("user create failed", zap.String("username", in.Username), zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventUserRegistered,
			EntityID:   user.ID,
			Actor:      events.Actor{UserID: user.ID, Username: user.Username},
			OccurredAt: time.Now(),
			Payload: events.UserRegisteredPayload{
				Username: user.Username,
				Email:    user.Email,
				Role:     role.Name,
			},
		})
	}
	return user, nil
}

// Update rewrites an existing account. The record's own username and email
// do not trip the uniqueness checks.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	errs, role, err := s.validate(ctx, in, id, false)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError("érvénytelen adatok", fieldErrorDetails(errs))
	}

	user.Surname = util.TitleCase(in.Surname)
	user.Forename = util.TitleCase(in.Forename)
	user.Username = in.Username
	user.Email = in.Email
	user.RoleID = role.ID
	user.Role = role

	if err := s.users.UpdateWithPosition(ctx, user, in.Position); err != nil {
		s.logger.Error("user update failed", zap.Int64("user_id", id), zap.Error(err))
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete permanently removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches one account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns every account ordered by name.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Roles lists the selectable roles.
func (s *UserService) Roles(ctx context.Context) ([]domain.Lookup, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

// validate runs the pure rule table, then the storage-backed uniqueness and
// role checks. excludeID exempts the record being edited from uniqueness.
func (s *UserService) validate(ctx context.Context, in UserInput, excludeID int64, requirePassword bool) ([]FieldError, *domain.Lookup, error) {
	errs := checkUser(in, requirePassword)

	var role *domain.Lookup
	if in.RoleID > 0 {
		found, err := s.roles.GetByID(ctx, in.RoleID)
		if errors.Is(err, pgx.ErrNoRows) {
			errs = append(errs, FieldError{Field: "role_id", Message: "Ismeretlen szerepkör"})
		} else if err != nil {
			return nil, nil, apperrors.MapError(err)
		} else {
			role = found
		}
	}

	if len(errs) == 0 {
		taken, err := s.users.UsernameExists(ctx, in.Username, excludeID)
		if err != nil {
			return nil, nil, apperrors.MapError(err)
		}
		if taken {
			errs = append(errs, FieldError{Field: "username", Message: "Ez a felhasználónév már foglalt, adjon meg másikat"})
		}

		taken, err = s.users.EmailExists(ctx, in.Email, excludeID)
		if err != nil {
			return nil, nil, apperrors.MapError(err)
		}
		if taken {
			errs = append(errs, FieldError{Field: "email", Message: "Ez az email cím már foglalt, adjon meg másikat"})
		}
	}

	return errs, role, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/events"
	"github.com/qmdesk/complaint-service/internal/repository"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

const recentComplaintLimit = 5

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher, logger: logger}
}

// Create validates and records a new complaint on behalf of author. The five
// dimension inputs are resolved inside the same transaction as the insert.
func (s *ComplaintService) Create(ctx context.Context, author *domain.User, in ComplaintInput) (*domain.Complaint, error) {
	errs := checkComplaint(in)
	if len(errs) == 0 {
		exists, err := s.complaints.NumberExists(ctx, in.ComplaintNumber, 0)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if exists {
			errs = append(errs, FieldError{Field: "complaint_number", Message: "Ez a reklamációszám már létezik"})
		}
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError("érvénytelen adatok", fieldErrorDetails(errs))
	}

	complaint := &domain.Complaint{
		ComplaintDate:     in.ComplaintDate,
		ComplaintNumber:   in.ComplaintNumber,
		ProductIdentifier: in.ProductIdentifier,
		Quantity:          in.Quantity,
		RequiresReturn:    in.RequiresReturn,
		Description:       in.Description,
		ShippingDate:      in.ShippingDate,
		TotalCost:         in.Cost(),
		UserID:            author.ID,
	}

	if err := s.complaints.CreateWithDimensions(ctx, complaint, in.Dimensions); err != nil {
		s.logger.Error("complaint create failed", zap.String("complaint_number", in.ComplaintNumber), zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventComplaintCreated, complaint, author)
	return complaint, nil
}

// Update validates and rewrites an existing complaint. Resubmitting the
// record's own complaint number is not a uniqueness violation.
func (s *ComplaintService) Update(ctx context.Context, author *domain.User, id int64, in ComplaintInput) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	errs := checkComplaint(in)
	if len(errs) == 0 {
		exists, err := s.complaints.NumberExists(ctx, in.ComplaintNumber, id)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if exists {
			errs = append(errs, FieldError{Field: "complaint_number", Message: "Ez a reklamációszám már létezik"})
		}
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError("érvénytelen adatok", fieldErrorDetails(errs))
	}

	complaint.ComplaintDate = in.ComplaintDate
	complaint.ComplaintNumber = in.ComplaintNumber
	complaint.ProductIdentifier = in.ProductIdentifier
	complaint.Quantity = in.Quantity
	complaint.RequiresReturn = in.RequiresReturn
	complaint.Description = in.Description
	complaint.ShippingDate = in.ShippingDate
	complaint.TotalCost = in.Cost()

	if err := s.complaints.UpdateWithDimensions(ctx, complaint, in.Dimensions); err != nil {
		s.logger.Error("complaint update failed", zap.Int64("complaint_id", id), zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventComplaintUpdated, complaint, author)
	return complaint, nil
}

// Delete removes a complaint. Shared dimension rows stay untouched.
func (s *ComplaintService) Delete(ctx context.Context, author *domain.User, id int64) error {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.complaints.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventComplaintDeleted, complaint, author)
	return nil
}

// Get fetches a single complaint by id.
func (s *ComplaintService) Get(ctx context.Context, id int64) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// List returns all complaints newest first, joined with dimension names.
func (s *ComplaintService) List(ctx context.Context) ([]domain.ComplaintDetail, error) {
	details, err := s.complaints.ListDetails(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

// Recent returns the five most recent complaints.
func (s *ComplaintService) Recent(ctx context.Context) ([]domain.ComplaintDetail, error) {
	details, err := s.complaints.ListRecent(ctx, recentComplaintLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

func (s *ComplaintService) publish(ctx context.Context, eventType events.EventType, complaint *domain.Complaint, author *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   complaint.ID,
		Actor:      events.Actor{UserID: author.ID, Username: author.Username},
		OccurredAt: time.Now(),
		Payload: events.ComplaintPayload{
			ComplaintNumber: complaint.ComplaintNumber,
			TotalCost:       complaint.TotalCost,
		},
	})
}

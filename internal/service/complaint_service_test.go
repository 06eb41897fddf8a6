package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/events"
	"github.com/qmdesk/complaint-service/internal/repository"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

type fakeComplaintRepo struct {
	complaints map[int64]*domain.Complaint
	nextID     int64
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: make(map[int64]*domain.Complaint)}
}

func (r *fakeComplaintRepo) CreateWithDimensions(_ context.Context, c *domain.Complaint, _ repository.DimensionInputs) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.complaints[c.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) UpdateWithDimensions(_ context.Context, c *domain.Complaint, _ repository.DimensionInputs) error {
	if _, ok := r.complaints[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *c
	r.complaints[c.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.complaints, id)
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	c, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (r *fakeComplaintRepo) ListDetails(_ context.Context) ([]domain.ComplaintDetail, error) {
	return nil, nil
}

func (r *fakeComplaintRepo) ListRecent(_ context.Context, _ int) ([]domain.ComplaintDetail, error) {
	return nil, nil
}

func (r *fakeComplaintRepo) NumberExists(_ context.Context, number string, excludeID int64) (bool, error) {
	for id, c := range r.complaints {
		if c.ComplaintNumber == number && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func testAuthor() *domain.User {
	return &domain.User{ID: 7, Username: "kovacsj"}
}

func TestComplaintCreate(t *testing.T) {
	repo := newFakeComplaintRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewComplaintService(repo, dispatcher, zap.NewNop())

	created, err := svc.Create(context.Background(), testAuthor(), validComplaintInput())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(7), created.UserID)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventComplaintCreated, dispatcher.published[0].Type)
}

func TestComplaintCreateRejectsDuplicateNumber(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, &recordingDispatcher{}, zap.NewNop())

	_, err := svc.Create(context.Background(), testAuthor(), validComplaintInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), testAuthor(), validComplaintInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "complaint_number")
}

func TestComplaintUpdateAllowsOwnNumber(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, &recordingDispatcher{}, zap.NewNop())

	created, err := svc.Create(context.Background(), testAuthor(), validComplaintInput())
	require.NoError(t, err)

	// Resubmitting the record's own number must not trip uniqueness.
	in := validComplaintInput()
	in.Quantity = 9
	updated, err := svc.Update(context.Background(), testAuthor(), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
}

func TestComplaintUpdateUnknownID(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintRepo(), &recordingDispatcher{}, zap.NewNop())

	_, err := svc.Update(context.Background(), testAuthor(), 42, validComplaintInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestComplaintDeletePublishesEvent(t *testing.T) {
	repo := newFakeComplaintRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewComplaintService(repo, dispatcher, zap.NewNop())

	created, err := svc.Create(context.Background(), testAuthor(), validComplaintInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), testAuthor(), created.ID))
	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, events.EventComplaintDeleted, dispatcher.published[1].Type)

	_, err = svc.Get(context.Background(), created.ID)
	assert.Error(t, err)
}

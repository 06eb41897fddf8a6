package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmdesk/complaint-service/internal/domain"
)

func TestComplaintRequestToInput(t *testing.T) {
	req := ComplaintRequest{
		ComplaintDate:   "2026-02-10",
		ComplaintNumber: "RK-2026-001",
		ShippingDate:    "2026-02-20",
		Department:      "Öntöde",
		Status:          "3",
	}

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), in.ComplaintDate)
	require.NotNil(t, in.ShippingDate)
	assert.Equal(t, "Öntöde", in.Dimensions.Department)
	assert.Equal(t, "3", in.Dimensions.Status)
}

func TestComplaintRequestToInputOptionalShippingDate(t *testing.T) {
	in, err := ComplaintRequest{ComplaintDate: "2026-02-10"}.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.ShippingDate)
}

func TestComplaintRequestToInputBadDate(t *testing.T) {
	_, err := ComplaintRequest{ComplaintDate: "2026/02/10"}.ToInput()
	assert.Error(t, err)

	_, err = ComplaintRequest{ComplaintDate: "2026-02-10", ShippingDate: "tegnap"}.ToInput()
	assert.Error(t, err)
}

func TestComplaintDetailResponsesPlaceholders(t *testing.T) {
	details := []domain.ComplaintDetail{{
		ID:              1,
		ComplaintDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		ComplaintNumber: "RK-2026-001",
		Quantity:        2,
	}}

	out := NewComplaintDetailResponses(details)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-02-10", out[0].Date)
	assert.Equal(t, "-", out[0].Customer)
	assert.Equal(t, "-", out[0].ShippingDate)
	assert.Equal(t, "-", out[0].Status)
}

func TestComplaintDetailResponsesEmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, NewComplaintDetailResponses(nil))
}

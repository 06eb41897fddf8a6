package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fieldMessages(errs []FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field] = fe.Message
	}
	return out
}

func validComplaintInput() ComplaintInput {
	return ComplaintInput{
		ComplaintDate:     time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		ComplaintNumber:   "RK-2026-001",
		ProductIdentifier: "A-123",
		Quantity:          3,
	}
}

func TestCheckComplaintValid(t *testing.T) {
	assert.Empty(t, checkComplaint(validComplaintInput()))
}

func TestCheckComplaintRequiredFields(t *testing.T) {
	msgs := fieldMessages(checkComplaint(ComplaintInput{Quantity: 1}))
	assert.Equal(t, "Kötelező mező", msgs["complaint_date"])
	assert.Equal(t, "Kötelező mező", msgs["complaint_number"])
	assert.Equal(t, "Kötelező mező", msgs["product_identifier"])
}

func TestCheckComplaintQuantityAndCost(t *testing.T) {
	in := validComplaintInput()
	in.Quantity = 0
	negative := -10.0
	in.TotalCost = &negative

	msgs := fieldMessages(checkComplaint(in))
	assert.Equal(t, "A mennyiségnek legalább 1-nek kell lennie", msgs["quantity"])
	assert.Equal(t, "A költség nem lehet negatív", msgs["total_cost"])
}

func TestComplaintInputCostDefaultsToZero(t *testing.T) {
	assert.Zero(t, ComplaintInput{}.Cost())
	cost := 150.0
	assert.Equal(t, 150.0, ComplaintInput{TotalCost: &cost}.Cost())
}

func validUserInput() UserInput {
	return UserInput{
		Surname:  "Kovács",
		Forename: "János",
		Username: "kovacsj",
		Email:    "kovacs.janos@example.com",
		Password: "titok123",
		RoleID:   2,
	}
}

func TestCheckUserValid(t *testing.T) {
	assert.Empty(t, checkUser(validUserInput(), true))
}

func TestCheckUserUsernameLength(t *testing.T) {
	in := validUserInput()
	in.Username = "x"
	msgs := fieldMessages(checkUser(in, false))
	assert.Equal(t, "A felhasználónév hossza 2 és 20 karakter között lehet", msgs["username"])

	in.Username = "nagyonhosszufelhasznalonev"
	msgs = fieldMessages(checkUser(in, false))
	assert.Contains(t, msgs, "username")
}

func TestCheckUserEmailFormat(t *testing.T) {
	in := validUserInput()
	in.Email = "nem-email"
	msgs := fieldMessages(checkUser(in, false))
	assert.Equal(t, "A megadott email cím formailag nem megfelelő", msgs["email"])
}

func TestCheckUserPasswordOnlyRequiredOnCreate(t *testing.T) {
	in := validUserInput()
	in.Password = ""

	assert.Contains(t, fieldMessages(checkUser(in, true)), "password")
	assert.NotContains(t, fieldMessages(checkUser(in, false)), "password")
}

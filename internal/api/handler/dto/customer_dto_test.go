package dto

import (
	"testing"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRequestToCreateDTO(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		wantBirth *time.Time
		wantErr   bool
	}{
		{"Without birth date", "", nil, false},
		{"With birth date", "1990-04-12", ptrTime(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)), false},
		{"Malformed birth date", "12/04/1990", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateCustomerRequest{
				FirstName:   "Ana",
				LastName:    "Gomez",
				CompanyName: "Gomez SRL",
				TaxID:       "20-12345678-9",
				Email:       "ana@example.com",
				MobilePhone: "+54 11 5555 0000",
				BirthDate:   tt.birthDate,
			}

			got, err := req.ToCreateDTO()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", got.FirstName)
			assert.Equal(t, "Gomez", got.LastName)
			assert.Equal(t, "Gomez SRL", got.CompanyName)
			assert.Equal(t, "20-12345678-9", got.TaxID)
			assert.Equal(t, "ana@example.com", got.Email)
			assert.Equal(t, "+54 11 5555 0000", got.MobilePhone)
			assert.Equal(t, tt.wantBirth, got.BirthDate)
		})
	}
}

func TestUpdateCustomerRequestToUpdateDTO(t *testing.T) {
	req := UpdateCustomerRequest{
		FirstName: "Luis",
		LastName:  "Perez",
		TaxID:     "20123456789",
		BirthDate: "1985-01-31",
	}

	got, err := req.ToUpdateDTO()
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.FirstName)
	assert.Equal(t, "20-12345678-9", got.TaxID)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "1985-01-31", got.BirthDate.Format(DateLayout))

	_, err = UpdateCustomerRequest{BirthDate: "1985-13-01"}.ToUpdateDTO()
	assert.Error(t, err)
}

func TestTaxIDSpellingsShareOneStoredForm(t *testing.T) {
	dashed, err := CreateCustomerRequest{FirstName: "Ana", LastName: "Gomez", TaxID: "20-12345678-9"}.ToCreateDTO()
	require.NoError(t, err)
	plain, err := CreateCustomerRequest{FirstName: "Ana", LastName: "Gomez", TaxID: "20123456789"}.ToCreateDTO()
	require.NoError(t, err)
	assert.Equal(t, dashed.TaxID, plain.TaxID)

	update, err := UpdateCustomerRequest{FirstName: "Ana", LastName: "Gomez", TaxID: "2012345678-9"}.ToUpdateDTO()
	require.NoError(t, err)
	assert.Equal(t, dashed.TaxID, update.TaxID)
}

func TestCanonicalTaxID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20-12345678-9", "20-12345678-9"},
		{"20123456789", "20-12345678-9"},
		{"20-123456789", "20-12345678-9"},
		{" 20123456789 ", "20-12345678-9"},
		{"123", "123"},
		{"2012345678X", "2012345678X"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalTaxID(tt.in))
		})
	}
}

func TestNewCustomerResponse(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)
	birth := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)

	resp := NewCustomerResponse(&customer.CustomerDTO{
		CustomerID:  7,
		FirstName:   "Ana",
		LastName:    "Gomez",
		CompanyName: "Gomez SRL",
		TaxID:       "20-12345678-9",
		Email:       "ana@example.com",
		MobilePhone: "123",
		BirthDate:   &birth,
		CreateDate:  created,
		UpdatedAt:   &updated,
	})

	assert.Equal(t, int64(7), resp.CustomerID)
	assert.Equal(t, "Gomez SRL", resp.CompanyName)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1990-04-12", *resp.BirthDate)
	assert.Equal(t, created, resp.CreateDate)
	assert.Equal(t, &updated, resp.UpdatedAt)

	assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))
	assert.Nil(t, NewCustomerResponse(&customer.CustomerDTO{CustomerID: 1}).BirthDate)
}

func TestNewCustomerListResponse(t *testing.T) {
	assert.Empty(t, NewCustomerListResponse(nil))
	assert.NotNil(t, NewCustomerListResponse(nil))

	resp := NewCustomerListResponse([]customer.CustomerDTO{{CustomerID: 1}, {CustomerID: 2}})
	require.Len(t, resp, 2)
	assert.Equal(t, int64(1), resp[0].CustomerID)
	assert.Equal(t, int64(2), resp[1].CustomerID)
}

func TestNewOperationFailureResponse(t *testing.T) {
	resp := NewOperationFailureResponse([]customer.ValidationFailure{
		{Field: "", Message: "the customer with the specified ID does not exist"},
	})

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "the customer with the specified ID does not exist", resp.Error.Message)

	empty := NewOperationFailureResponse(nil)
	assert.Empty(t, empty.Failures)
	assert.Empty(t, empty.Error.Message)
}

func ptrTime(t time.Time) *time.Time { return &t }

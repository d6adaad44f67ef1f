package dto

import (
	"fmt"
	"strings"
	"time"

	"customer-service/internal/domain/customer"
)

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

type CreateCustomerRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	CompanyName string `json:"companyName" validate:"max=200"`
	TaxID       string `json:"taxId" validate:"required,cuit"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	MobilePhone string `json:"mobilePhone" validate:"omitempty,max=30"`
	BirthDate   string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateCustomerRequest) ToCreateDTO() (customer.CustomerCreateDTO, error) {
	birth, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return customer.CustomerCreateDTO{}, err
	}
	return customer.CustomerCreateDTO{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		CompanyName: r.CompanyName,
		TaxID:       CanonicalTaxID(r.TaxID),
		Email:       r.Email,
		MobilePhone: r.MobilePhone,
		BirthDate:   birth,
	}, nil
}

type UpdateCustomerRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	CompanyName string `json:"companyName" validate:"max=200"`
	TaxID       string `json:"taxId" validate:"required,cuit"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	MobilePhone string `json:"mobilePhone" validate:"omitempty,max=30"`
	BirthDate   string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdateCustomerRequest) ToUpdateDTO() (customer.CustomerUpdateDTO, error) {
	birth, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return customer.CustomerUpdateDTO{}, err
	}
	return customer.CustomerUpdateDTO{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		CompanyName: r.CompanyName,
		TaxID:       CanonicalTaxID(r.TaxID),
		Email:       r.Email,
		MobilePhone: r.MobilePhone,
		BirthDate:   birth,
	}, nil
}

// CanonicalTaxID renders an 11-digit CUIT as NN-NNNNNNNN-N whether or not it
// was sent with dashes. Other values are returned unchanged.
func CanonicalTaxID(s string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(digits) != 11 || strings.Trim(digits, "0123456789") != "" {
		return s
	}
	return digits[:2] + "-" + digits[2:10] + "-" + digits[10:]
}

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("birthDate must use the %s layout: %w", DateLayout, err)
	}
	return &t, nil
}

type CustomerResponse struct {
	CustomerID  int64      `json:"customerId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName string     `json:"companyName"`
	TaxID       string     `json:"taxId"`
	Email       string     `json:"email"`
	MobilePhone string     `json:"mobilePhone"`
	BirthDate   *string    `json:"birthDate,omitempty"`
	CreateDate  time.Time  `json:"createDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func NewCustomerResponse(cust *customer.CustomerDTO) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	var birth *string
	if cust.BirthDate != nil {
		s := cust.BirthDate.Format(DateLayout)
		birth = &s
	}

	return CustomerResponse{
		CustomerID:  cust.CustomerID,
		FirstName:   cust.FirstName,
		LastName:    cust.LastName,
		CompanyName: cust.CompanyName,
		TaxID:       cust.TaxID,
		Email:       cust.Email,
		MobilePhone: cust.MobilePhone,
		BirthDate:   birth,
		CreateDate:  cust.CreateDate,
		UpdatedAt:   cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []customer.CustomerDTO) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i := range customers {
		resp[i] = NewCustomerResponse(&customers[i])
	}
	return resp
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error   ErrorDetail   `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// OperationFailureResponse is returned when an update or delete is rejected
// by the existence check.
type OperationFailureResponse struct {
	Error    ErrorDetail   `json:"error"`
	Failures []ErrorDetail `json:"failures"`
}

func NewOperationFailureResponse(failures []customer.ValidationFailure) OperationFailureResponse {
	resp := OperationFailureResponse{Failures: make([]ErrorDetail, len(failures))}
	for i, f := range failures {
		resp.Failures[i] = ErrorDetail{Message: f.Message, Field: f.Field}
	}
	if len(failures) > 0 {
		resp.Error = resp.Failures[0]
	}
	return resp
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

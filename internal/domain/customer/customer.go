package customer

import "time"

type Customer struct {
	CustomerID  int64      `json:"customerId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName string     `json:"companyName"`
	TaxID       string     `json:"taxId"`
	Email       string     `json:"email"`
	MobilePhone string     `json:"mobilePhone"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	CreateDate  time.Time  `json:"createDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// MarkUpdated stamps the modification time. It never moves UpdatedAt before CreateDate.
func (c *Customer) MarkUpdated(at time.Time) {
	if at.Before(c.CreateDate) {
		at = c.CreateDate
	}
	c.UpdatedAt = &at
}

// CustomerDTO is the read-facing projection of a Customer.
type CustomerDTO struct {
	CustomerID  int64      `json:"customerId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName string     `json:"companyName"`
	TaxID       string     `json:"taxId"`
	Email       string     `json:"email"`
	MobilePhone string     `json:"mobilePhone"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	CreateDate  time.Time  `json:"createDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type CustomerCreateDTO struct {
	FirstName   string
	LastName    string
	CompanyName string
	TaxID       string
	Email       string
	MobilePhone string
	BirthDate   *time.Time
}

type CustomerUpdateDTO struct {
	FirstName   string
	LastName    string
	CompanyName string
	TaxID       string
	Email       string
	MobilePhone string
	BirthDate   *time.Time
}

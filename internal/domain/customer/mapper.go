package customer

import "time"

func ToDTO(c *Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		CustomerID:  c.CustomerID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyName: c.CompanyName,
		TaxID:       c.TaxID,
		Email:       c.Email,
		MobilePhone: c.MobilePhone,
		BirthDate:   cloneTime(c.BirthDate),
		CreateDate:  c.CreateDate,
		UpdatedAt:   cloneTime(c.UpdatedAt),
	}
}

// ToDTOs keeps the input order and skips nil records. The result is never nil.
func ToDTOs(customers []*Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		out = append(out, *ToDTO(c))
	}
	return out
}

func FromCreateDTO(in CustomerCreateDTO) *Customer {
	return &Customer{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		CompanyName: in.CompanyName,
		TaxID:       in.TaxID,
		Email:       in.Email,
		MobilePhone: in.MobilePhone,
		BirthDate:   cloneTime(in.BirthDate),
	}
}

// ApplyUpdate copies every settable field of in onto dst. Identity and
// timestamps are left alone.
func ApplyUpdate(dst *Customer, in CustomerUpdateDTO) {
	dst.FirstName = in.FirstName
	dst.LastName = in.LastName
	dst.CompanyName = in.CompanyName
	dst.TaxID = in.TaxID
	dst.Email = in.Email
	dst.MobilePhone = in.MobilePhone
	dst.BirthDate = cloneTime(in.BirthDate)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDTO(t *testing.T) {
	birth := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	c := &Customer{
		CustomerID:  1,
		FirstName:   "Juan",
		LastName:    "Pérez",
		CompanyName: "Pérez SRL",
		TaxID:       "20-12345678-9",
		Email:       "juan@example.com",
		MobilePhone: "+54 11 5555-0000",
		BirthDate:   &birth,
		CreateDate:  created,
		UpdatedAt:   &updated,
	}

	dto := ToDTO(c)

	require.NotNil(t, dto)
	assert.Equal(t, CustomerDTO{
		CustomerID:  1,
		FirstName:   "Juan",
		LastName:    "Pérez",
		CompanyName: "Pérez SRL",
		TaxID:       "20-12345678-9",
		Email:       "juan@example.com",
		MobilePhone: "+54 11 5555-0000",
		BirthDate:   &birth,
		CreateDate:  created,
		UpdatedAt:   &updated,
	}, *dto)

	*c.BirthDate = time.Time{}
	assert.Equal(t, birth, *dto.BirthDate, "DTO must not share time pointers with the record")
	assert.Nil(t, ToDTO(nil))
}

func TestToDTOs(t *testing.T) {
	t.Run("Keeps order and skips nil records", func(t *testing.T) {
		dtos := ToDTOs([]*Customer{
			{CustomerID: 2, FirstName: "María"},
			nil,
			{CustomerID: 1, FirstName: "Juan"},
		})

		require.Len(t, dtos, 2)
		assert.Equal(t, "María", dtos[0].FirstName)
		assert.Equal(t, "Juan", dtos[1].FirstName)
	})

	t.Run("Nil input yields an empty slice", func(t *testing.T) {
		dtos := ToDTOs(nil)

		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})
}

func TestFromCreateDTO(t *testing.T) {
	birth := time.Date(1985, 2, 1, 0, 0, 0, 0, time.UTC)
	c := FromCreateDTO(CustomerCreateDTO{
		FirstName:   "Ana",
		LastName:    "García",
		CompanyName: "García SA",
		TaxID:       "27-87654321-3",
		Email:       "ana@example.com",
		MobilePhone: "1155550000",
		BirthDate:   &birth,
	})

	assert.Zero(t, c.CustomerID)
	assert.True(t, c.CreateDate.IsZero())
	assert.Nil(t, c.UpdatedAt)
	assert.Equal(t, "Ana", c.FirstName)
	assert.Equal(t, "García", c.LastName)
	assert.Equal(t, "García SA", c.CompanyName)
	assert.Equal(t, "27-87654321-3", c.TaxID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "1155550000", c.MobilePhone)
	assert.Equal(t, birth, *c.BirthDate)
}

func TestApplyUpdate(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	c := &Customer{CustomerID: 4, FirstName: "Old", CreateDate: created}

	ApplyUpdate(c, CustomerUpdateDTO{FirstName: "New", LastName: "Name", Email: "new@example.com"})

	assert.Equal(t, int64(4), c.CustomerID)
	assert.Equal(t, created, c.CreateDate)
	assert.Nil(t, c.UpdatedAt)
	assert.Equal(t, "New", c.FirstName)
	assert.Equal(t, "Name", c.LastName)
	assert.Equal(t, "new@example.com", c.Email)
	assert.Nil(t, c.BirthDate)
}

func TestMarkUpdated(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Stamps the given time", func(t *testing.T) {
		c := &Customer{CreateDate: created}
		at := created.Add(time.Hour)

		c.MarkUpdated(at)

		require.NotNil(t, c.UpdatedAt)
		assert.Equal(t, at, *c.UpdatedAt)
	})

	t.Run("Never goes before the creation date", func(t *testing.T) {
		c := &Customer{CreateDate: created}

		c.MarkUpdated(created.Add(-time.Minute))

		require.NotNil(t, c.UpdatedAt)
		assert.Equal(t, created, *c.UpdatedAt)
	})
}

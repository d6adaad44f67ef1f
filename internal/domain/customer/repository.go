package customer

import (
	"context"
)

// CustomerRepository is the persistence port. Lookups report a missing
// customer as (nil, nil); errors are reserved for storage failures.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]*Customer, error)

	GetByID(ctx context.Context, customerID int64) (*Customer, error)

	// GetByIDForOperations returns a full, detached copy meant to be mutated
	// and handed back to Update or Delete.
	GetByIDForOperations(ctx context.Context, customerID int64) (*Customer, error)

	Create(ctx context.Context, customer *Customer) (*Customer, error)

	// Update and Delete return the affected customer ID, or nil when no row changed.
	Update(ctx context.Context, customer *Customer) (*int64, error)

	Delete(ctx context.Context, customer *Customer) (*int64, error)

	SearchByName(ctx context.Context, term string) ([]*Customer, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, first_name, last_name, company_name, tax_id, email, mobile_phone, birth_date, created_at, updated_at`

const (
	selectAllCustomersQuery = `
        SELECT ` + customerColumns + `
        FROM customers
        ORDER BY id ASC`

	selectCustomerByIDQuery = `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE id = $1`

	insertCustomerQuery = `
        INSERT INTO customers (first_name, last_name, company_name, tax_id, email, mobile_phone, birth_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at, updated_at`

	updateCustomerQuery = `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            company_name = $3,
            tax_id = $4,
            email = $5,
            mobile_phone = $6,
            birth_date = $7,
            updated_at = $8
        WHERE id = $9`

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`

	searchCustomersQuery = `
        SELECT ` + customerColumns + `
        FROM search_customers_by_name($1)`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CompanyName,
		&cust.TaxID,
		&cust.Email,
		&cust.MobilePhone,
		&cust.BirthDate,
		&cust.CreateDate,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, queryName, query string, args ...any) (customers []*customer.Customer, err error) {
	start := time.Now()
	defer func() { observeQuery(queryName, start, err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.String("query", queryName), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query customers")
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.String("query", queryName), slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan customer row")
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.String("query", queryName), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "error iterating customer rows")
	}

	return customers, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find all customers")

	customers, err := r.queryCustomers(ctx, "get_all_customers", selectAllCustomersQuery)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) findByID(ctx context.Context, queryName string, customerID int64) (cust *customer.Customer, err error) {
	start := time.Now()
	defer func() { observeQuery(queryName, start, err) }()

	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to find customer by ID")

	cust, err = scanCustomer(r.db.QueryRow(ctx, selectCustomerByIDQuery, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Customer not found")
			return nil, nil
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to get customer by ID")
	}

	logger.InfoContext(ctx, "Customer found successfully")
	return cust, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findByID(ctx, "get_customer_by_id", customerID)
}

// GetByIDForOperations loads the full row as a fresh value owned by the caller,
// ready to be modified and passed back to Update or Delete.
func (r *CustomerRepository) GetByIDForOperations(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findByID(ctx, "get_customer_for_operations", customerID)
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) (created *customer.Customer, err error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	defer func() { observeQuery("create_customer", start, err) }()

	logger := r.logger.With(slog.String("taxID", cust.TaxID))
	logger.InfoContext(ctx, "Attempting to insert new customer")

	stored := *cust
	err = r.db.QueryRow(ctx, insertCustomerQuery,
		stored.FirstName,
		stored.LastName,
		stored.CompanyName,
		stored.TaxID,
		stored.Email,
		stored.MobilePhone,
		stored.BirthDate,
	).Scan(
		&stored.CustomerID,
		&stored.CreateDate,
		&stored.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, logger, "failed to insert customer")
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
		}
		return nil, translatedErr
	}

	logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", stored.CustomerID))
	return &stored, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) (token *int64, err error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	defer func() { observeQuery("update_customer", start, err) }()

	logger := r.logger.With(slog.Int64("customerID", cust.CustomerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	cmdTag, err := r.db.Exec(ctx, updateCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.CompanyName,
		cust.TaxID,
		cust.Email,
		cust.MobilePhone,
		cust.BirthDate,
		cust.UpdatedAt,
		cust.CustomerID,
	)
	if err != nil {
		translatedErr := translateDBError(err, logger, "failed to update customer")
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation")
		}
		return nil, translatedErr
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update affected zero rows, customer likely removed concurrently")
		return nil, nil
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	id := cust.CustomerID
	return &id, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, cust *customer.Customer) (token *int64, err error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	defer func() { observeQuery("delete_customer", start, err) }()

	logger := r.logger.With(slog.Int64("customerID", cust.CustomerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, deleteCustomerQuery, cust.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to delete customer")
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Delete affected zero rows, customer likely removed concurrently")
		return nil, nil
	}

	logger.InfoContext(ctx, "Customer deleted successfully")
	id := cust.CustomerID
	return &id, nil
}

func (r *CustomerRepository) SearchByName(ctx context.Context, term string) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to search customers by name", slog.String("term", term))

	customers, err := r.queryCustomers(ctx, "search_customers_by_name", searchCustomersQuery, term)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished searching customers", slog.Int("count", len(customers)))
	return customers, nil
}

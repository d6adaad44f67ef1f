package customer

import (
	"context"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
	"log/slog"
	"os"
	"time"
)

const customerNotFound = "Customer with the specified ID does not exist"

type CustomerService interface {
	List(ctx context.Context) ([]CustomerDTO, error)
	GetByID(ctx context.Context, customerID int64) (*CustomerDTO, error)
	Create(ctx context.Context, input *CustomerCreateDTO) (*int64, error)
	Update(ctx context.Context, customerID int64, input CustomerUpdateDTO) (OperationResult, error)
	Delete(ctx context.Context, customerID int64) (OperationResult, error)
	Search(ctx context.Context, term string) ([]CustomerDTO, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will not be published")
		eventPublisher = event.NoopPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

// observe logs the start and outcome of a repository-backed operation and
// records its latency. Errors are returned exactly as fn produced them.
func observe[T any](ctx context.Context, logger *slog.Logger, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()
	logger.InfoContext(ctx, "Starting "+operation)

	result, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to "+operation,
			slog.Any("error", err),
			slog.Int64("elapsed_ms", elapsed.Milliseconds()))
		monitoring.RecordServiceOperation(operation, monitoring.StatusError, elapsed)
		return result, err
	}

	logger.InfoContext(ctx, "Finished "+operation, slog.Int64("elapsed_ms", elapsed.Milliseconds()))
	monitoring.RecordServiceOperation(operation, monitoring.StatusSuccess, elapsed)
	return result, nil
}

func (s *customerService) List(ctx context.Context) ([]CustomerDTO, error) {
	return observe(ctx, s.logger, "list customers", func() ([]CustomerDTO, error) {
		customers, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		result := ToDTOs(customers)
		s.logger.InfoContext(ctx, "Retrieved customers", slog.Int("count", len(result)))
		return result, nil
	})
}

func (s *customerService) GetByID(ctx context.Context, customerID int64) (*CustomerDTO, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	return observe(ctx, logger, "get customer", func() (*CustomerDTO, error) {
		cust, err := s.repo.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if cust == nil {
			logger.InfoContext(ctx, "Customer not found")
			return nil, nil
		}
		return ToDTO(cust), nil
	})
}

func (s *customerService) Create(ctx context.Context, input *CustomerCreateDTO) (*int64, error) {
	if input == nil {
		s.logger.WarnContext(ctx, "Attempted to create a customer with nil data")
		return nil, nil
	}
	logger := s.logger.With(slog.String("taxID", input.TaxID))

	return observe(ctx, logger, "create customer", func() (*int64, error) {
		created, err := s.repo.Create(ctx, FromCreateDTO(*input))
		if err != nil {
			return nil, err
		}
		if created == nil {
			logger.WarnContext(ctx, "Repository did not return a created customer")
			return nil, nil
		}

		id := created.CustomerID
		logger.InfoContext(ctx, "Customer created", slog.Int64("customerID", id))
		monitoring.RecordCustomerMutation("created")
		s.publish(ctx, event.RoutingKeyCustomerCreated, created)
		return &id, nil
	})
}

func (s *customerService) Update(ctx context.Context, customerID int64, input CustomerUpdateDTO) (OperationResult, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	return observe(ctx, logger, "update customer", func() (OperationResult, error) {
		existing, err := s.repo.GetByIDForOperations(ctx, customerID)
		if err != nil {
			return OperationResult{}, err
		}

		validation := NewCustomerValidator(IntentUpdate, existing).Validate()
		if !validation.IsValid() {
			logger.WarnContext(ctx, customerNotFound)
			monitoring.RecordValidationRejected(IntentUpdate.String())
			return Rejected(validation.Failures), nil
		}

		ApplyUpdate(existing, input)
		existing.MarkUpdated(time.Now())

		token, err := s.repo.Update(ctx, existing)
		if err != nil {
			return OperationResult{}, err
		}

		logger.InfoContext(ctx, "Customer updated")
		monitoring.RecordCustomerMutation("updated")
		s.publish(ctx, event.RoutingKeyCustomerUpdated, existing)
		return Succeeded(token), nil
	})
}

func (s *customerService) Delete(ctx context.Context, customerID int64) (OperationResult, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	return observe(ctx, logger, "delete customer", func() (OperationResult, error) {
		existing, err := s.repo.GetByIDForOperations(ctx, customerID)
		if err != nil {
			return OperationResult{}, err
		}

		validation := NewCustomerValidator(IntentDelete, existing).Validate()
		if !validation.IsValid() {
			logger.WarnContext(ctx, customerNotFound)
			monitoring.RecordValidationRejected(IntentDelete.String())
			return Rejected(validation.Failures), nil
		}

		token, err := s.repo.Delete(ctx, existing)
		if err != nil {
			return OperationResult{}, err
		}

		logger.InfoContext(ctx, "Customer deleted")
		monitoring.RecordCustomerMutation("deleted")
		s.publish(ctx, event.RoutingKeyCustomerDeleted, existing)
		return Succeeded(token), nil
	})
}

func (s *customerService) Search(ctx context.Context, term string) ([]CustomerDTO, error) {
	logger := s.logger.With(slog.String("term", term))

	return observe(ctx, logger, "search customers", func() ([]CustomerDTO, error) {
		customers, err := s.repo.SearchByName(ctx, term)
		if err != nil {
			return nil, err
		}
		if len(customers) == 0 {
			logger.WarnContext(ctx, "No customers matched the search")
			return []CustomerDTO{}, nil
		}

		result := ToDTOs(customers)
		logger.InfoContext(ctx, "Search matched customers", slog.Int("count", len(result)))
		return result, nil
	})
}

func newEventPayload(c *Customer) event.CustomerEventPayload {
	return event.CustomerEventPayload{
		CustomerID:  c.CustomerID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyName: c.CompanyName,
		TaxID:       c.TaxID,
		Email:       c.Email,
		CreateDate:  c.CreateDate,
		UpdatedAt:   c.UpdatedAt,
	}
}

// publish never affects the outcome of the operation that triggered it.
func (s *customerService) publish(ctx context.Context, routingKey string, c *Customer) {
	evt := event.NewCustomerEvent(routingKey, newEventPayload(c))

	var err error
	switch routingKey {
	case event.RoutingKeyCustomerCreated:
		err = s.pub.PublishCustomerCreated(ctx, evt)
	case event.RoutingKeyCustomerUpdated:
		err = s.pub.PublishCustomerUpdated(ctx, evt)
	case event.RoutingKeyCustomerDeleted:
		err = s.pub.PublishCustomerDeleted(ctx, evt)
	}

	if err != nil {
		monitoring.RecordEventPublishFailure()
		s.logger.ErrorContext(ctx, "Failed to publish customer event",
			slog.String("routingKey", routingKey),
			slog.Int64("customerID", c.CustomerID),
			slog.Any("error", err))
	}
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// customerService manages the customer directory used for sale attribution.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer registers a customer.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, operatorID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &customer, nil
}

// GetCustomerByID retrieves a customer by id.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// UpdateCustomer applies the non-nil fields of the request.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, operatorID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = operatorID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves a page of customers.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	resp := &dto.ListCustomersResponse{Customers: make([]dto.CustomerResponse, len(customers))}
	for i := range customers {
		resp.Customers[i] = dto.ToCustomerResponse(&customers[i])
	}
	return resp, nil
}

// DeleteCustomer removes a customer from the directory. Sales already
// attributed to it keep their customer id.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}
	return s.customerRepo.DeleteCustomer(ctx, customerID)
}

package services

import (
	"context"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, operatorID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, operatorID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

package dto

import (
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// CreateCustomerRequest registers a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest updates a customer. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// ListCustomersParams paginates the customer listing.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCustomersResponse is a page of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// CustomerResponse is a customer as returned to callers.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

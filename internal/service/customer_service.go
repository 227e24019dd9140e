package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lubristore/internal/domain"
	"lubristore/internal/repository"

	"github.com/google/uuid"
)

var ErrMissingCustomerName = errors.New("customer name is required")

// CustomerInput carries the admin-editable customer fields.
type CustomerInput struct {
	Name        string
	CompanyName string
	CompanyNUI  string
	Email       string
}

// CustomerService provides the admin customer directory
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// ListCustomers retrieves the customer directory
func (s *customerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// CreateCustomer stores a customer added manually from the dashboard
func (s *customerService) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if input.Name == "" {
		return nil, ErrMissingCustomerName
	}

	customer := &domain.Customer{
		ID:          uuid.New(),
		Name:        input.Name,
		CompanyName: input.CompanyName,
		CompanyNUI:  input.CompanyNUI,
		Email:       input.Email,
		CreatedAt:   time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

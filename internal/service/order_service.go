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

var (
	ErrEmptyCart          = errors.New("cart must contain at least one item")
	ErrInvalidQuantity    = errors.New("line item quantity must be at least 1")
	ErrMissingContactInfo = errors.New("all contact fields are required")
	ErrInvalidStatus      = errors.New("unknown order status")
)

// CartItem is one checkout line as submitted by the storefront.
type CartItem struct {
	ProductID   uuid.UUID
	Quantity    int
	PackageSize *float64
}

// ContactInfo is the customer-supplied checkout form.
type ContactInfo struct {
	Name        string
	CompanyName string
	CompanyNUI  string
	Email       string
}

// OrderService implements the order submission workflow and the status
// lifecycle on top of the order, customer, and product repositories.
type OrderService interface {
	Submit(ctx context.Context, cart []CartItem, contact ContactInfo) (*domain.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.OrderWithCustomer, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Submit resolves or creates the customer for the submitted email, prices
// the cart against the current catalog, and creates the order with status
// Submitted. Customer creation happens only on a confirmed no-match: a
// failed lookup aborts the submission so a transient error cannot mint
// duplicate customers. If the order insert fails after a customer was
// created in this call, that customer is deleted again so the two writes
// appear atomic to readers.
func (s *orderService) Submit(ctx context.Context, cart []CartItem, contact ContactInfo) (*domain.Order, error) {
	if err := validateSubmission(cart, contact); err != nil {
		return nil, err
	}

	customerID, created, err := s.resolveCustomer(ctx, contact)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart))
	var total float64
	for _, line := range cart {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if created {
				s.undoCustomer(ctx, customerID)
			}
			return nil, fmt.Errorf("failed to resolve product %s: %w", line.ProductID, err)
		}

		subtotal := product.Price * float64(line.Quantity)
		packageSize := line.PackageSize
		if packageSize == nil {
			packageSize = product.PackageSize
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			Quantity:    line.Quantity,
			PackageSize: packageSize,
			Subtotal:    subtotal,
		})
		total += subtotal
	}

	now := time.Now()
	order := &domain.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: total,
		Status:     domain.StatusSubmitted,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if created {
			s.undoCustomer(ctx, customerID)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// SetStatus overwrites the order's status. Any status may be set from any
// other; setting the current status again is a no-op that still refreshes
// the updated timestamp.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status, time.Now())
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set order status: %w", err)
	}

	return order, nil
}

// Get retrieves a single order
func (s *orderService) Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// List retrieves all orders with their customer contact fields, most recent first
func (s *orderService) List(ctx context.Context) ([]*domain.OrderWithCustomer, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// resolveCustomer reuses the existing customer for the submitted email or
// creates a new one. The second return reports whether a record was
// created in this call.
func (s *orderService) resolveCustomer(ctx context.Context, contact ContactInfo) (uuid.UUID, bool, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, contact.Email)
	if err == nil {
		return existing.ID, false, nil
	}
	if err != repository.ErrCustomerNotFound {
		return uuid.Nil, false, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer := &domain.Customer{
		ID:          uuid.New(),
		Name:        contact.Name,
		CompanyName: contact.CompanyName,
		CompanyNUI:  contact.CompanyNUI,
		Email:       contact.Email,
		CreatedAt:   time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer.ID, true, nil
}

// undoCustomer best-effort deletes a customer created earlier in the same
// submission. The deletion error is intentionally dropped: the submission
// already failed and that is the error the caller sees.
func (s *orderService) undoCustomer(ctx context.Context, customerID uuid.UUID) {
	_ = s.customerRepo.Delete(ctx, customerID)
}

func validateSubmission(cart []CartItem, contact ContactInfo) error {
	if len(cart) == 0 {
		return ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	if contact.Name == "" || contact.CompanyName == "" || contact.CompanyNUI == "" || contact.Email == "" {
		return ErrMissingContactInfo
	}
	return nil
}

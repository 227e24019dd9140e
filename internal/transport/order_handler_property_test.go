package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lubristore/internal/domain"
	"lubristore/internal/repository"
	"lubristore/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repositories for testing
type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

type mockCustomerRepository struct {
	customers map[uuid.UUID]*domain.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{
		customers: make(map[uuid.UUID]*domain.Customer),
	}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	for _, customer := range m.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, exists := m.customers[id]
	if !exists {
		return nil, repository.ErrCustomerNotFound
	}
	return customer, nil
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int, error) {
	return len(m.customers), nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

type mockOrderRepository struct {
	orders map[uuid.UUID]*domain.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		orders: make(map[uuid.UUID]*domain.Order),
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*domain.OrderWithCustomer, error) {
	orders := make([]*domain.OrderWithCustomer, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, &domain.OrderWithCustomer{Order: *order})
	}
	return orders, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	return order, nil
}

func newTestOrderHandler(productRepo *mockProductRepository) *OrderHandler {
	orderService := service.NewOrderService(newMockOrderRepository(), newMockCustomerRepository(), productRepo)
	logger, _ := zap.NewDevelopment()
	return NewOrderHandler(orderService, logger)
}

func seedProduct(repo *mockProductRepository, price float64) uuid.UUID {
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      "Engine Oil 10W-40",
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.products[product.ID] = product
	return product.ID
}

func TestProperty_InvalidSubmissionIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("submissions with missing or invalid fields return 400", prop.ForAll(
		func(invalidCase int) bool {
			productRepo := newMockProductRepository()
			productID := seedProduct(productRepo, 10.00)
			handler := newTestOrderHandler(productRepo)

			var reqBody SubmitOrderRequest

			switch invalidCase % 4 {
			case 0:
				// Missing email
				reqBody = SubmitOrderRequest{
					Customer: ContactPayload{Name: "Ana Marku", CompanyName: "Marku Logistics", CompanyNUI: "J12345678A"},
					Items:    []CartItemPayload{{ProductID: productID.String(), Quantity: 1}},
				}
			case 1:
				// Invalid email format
				reqBody = SubmitOrderRequest{
					Customer: ContactPayload{Name: "Ana Marku", CompanyName: "Marku Logistics", CompanyNUI: "J12345678A", Email: "not-an-email"},
					Items:    []CartItemPayload{{ProductID: productID.String(), Quantity: 1}},
				}
			case 2:
				// Empty cart
				reqBody = SubmitOrderRequest{
					Customer: ContactPayload{Name: "Ana Marku", CompanyName: "Marku Logistics", CompanyNUI: "J12345678A", Email: "ana@markulogistics.com"},
					Items:    []CartItemPayload{},
				}
			case 3:
				// Zero quantity
				reqBody = SubmitOrderRequest{
					Customer: ContactPayload{Name: "Ana Marku", CompanyName: "Marku Logistics", CompanyNUI: "J12345678A", Email: "ana@markulogistics.com"},
					Items:    []CartItemPayload{{ProductID: productID.String(), Quantity: 0}},
				}
			}

			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code != http.StatusBadRequest {
				t.Logf("FAIL: Expected 400 status code for case %d, got %d", invalidCase%4, w.Code)
				return false
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Logf("FAIL: Response is not valid JSON: %v", err)
				return false
			}

			if _, hasError := response["error"]; !hasError {
				t.Logf("FAIL: Response missing error structure")
				return false
			}

			return true
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidSubmissionReturnsPricedOrder(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a valid submission returns 201 with the priced order", prop.ForAll(
		func(price float64, quantity int) bool {
			productRepo := newMockProductRepository()
			productID := seedProduct(productRepo, price)
			handler := newTestOrderHandler(productRepo)

			reqBody := SubmitOrderRequest{
				Customer: ContactPayload{
					Name:        "Ana Marku",
					CompanyName: "Marku Logistics",
					CompanyNUI:  "J12345678A",
					Email:       "ana@markulogistics.com",
				},
				Items: []CartItemPayload{{ProductID: productID.String(), Quantity: quantity}},
			}

			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code != http.StatusCreated {
				t.Logf("FAIL: Expected 201 status code, got %d (%s)", w.Code, w.Body.String())
				return false
			}

			var order domain.Order
			if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
				t.Logf("FAIL: Could not decode order response: %v", err)
				return false
			}

			expected := price * float64(quantity)
			if math.Abs(order.TotalPrice-expected) > 0.001 {
				t.Logf("FAIL: total mismatch. Expected %f, got %f", expected, order.TotalPrice)
				return false
			}

			return order.Status == domain.StatusSubmitted
		},
		gen.Float64Range(0.01, 999.99),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateStatusEndpointMapsErrors(t *testing.T) {
	productRepo := newMockProductRepository()
	handler := newTestOrderHandler(productRepo)

	// Unknown status on an arbitrary id
	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "Cancelled"})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+uuid.New().String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", uuid.New().String())
	w := httptest.NewRecorder()

	handler.UpdateStatus(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown status, got %d", w.Code)
	}

	// Valid status on a missing order
	body, _ = json.Marshal(UpdateOrderStatusRequest{Status: string(domain.StatusPaid)})
	req = httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+uuid.New().String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", uuid.New().String())
	w = httptest.NewRecorder()

	handler.UpdateStatus(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown order, got %d", w.Code)
	}
}

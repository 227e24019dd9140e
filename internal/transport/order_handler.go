package transport

import (
	"net/http"

	"lubristore/internal/domain"
	"lubristore/internal/middleware"
	"lubristore/internal/repository"
	"lubristore/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactPayload is the checkout contact form
type ContactPayload struct {
	Name        string `json:"name" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
	CompanyNUI  string `json:"company_nui" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// CartItemPayload is one checkout line
type CartItemPayload struct {
	ProductID   string   `json:"product_id" validate:"required,uuid"`
	Quantity    int      `json:"quantity" validate:"required,gte=1"`
	PackageSize *float64 `json:"package_size,omitempty" validate:"omitempty,gt=0"`
}

// SubmitOrderRequest represents the order submission payload
type SubmitOrderRequest struct {
	Customer ContactPayload    `json:"customer" validate:"required"`
	Items    []CartItemPayload `json:"products" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the admin status change payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers the public checkout route and the admin order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, rateLimit, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.With(rateLimit).Post("/", h.Submit)
	})

	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}

// Submit handles order submission from the storefront checkout
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order submission validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart := make([]service.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
			return
		}
		cart = append(cart, service.CartItem{
			ProductID:   productID,
			Quantity:    item.Quantity,
			PackageSize: item.PackageSize,
		})
	}

	contact := service.ContactInfo{
		Name:        req.Customer.Name,
		CompanyName: req.Customer.CompanyName,
		CompanyNUI:  req.Customer.CompanyNUI,
		Email:       req.Customer.Email,
	}

	order, err := h.orderService.Submit(r.Context(), cart, contact)
	if err != nil {
		switch err {
		case service.ErrEmptyCart, service.ErrInvalidQuantity, service.ErrMissingContactInfo:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Order submission failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit order")
		}
		return
	}

	h.logger.Info("Order submitted",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.Float64("total_price", order.TotalPrice),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// List handles the admin order listing with joined customer contact fields
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get handles fetching a single order
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.Get(r.Context(), orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus handles the admin status change for an order
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.SetStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case service.ErrInvalidStatus:
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown order status")
		case repository.ErrOrderNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		default:
			h.logger.Error("Failed to update order status", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order status")
		}
		return
	}

	h.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

package service

import (
	"context"
	"fmt"
	"time"

	"lubristore/internal/domain"
	"lubristore/internal/repository"
)

// KPIs is the set of dashboard aggregates, recomputed from the live
// tables on every request.
type KPIs struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	TotalProducts     int     `json:"total_products"`
	TotalCustomers    int     `json:"total_customers"`
	AvgDailyRevenue   float64 `json:"avg_daily_revenue"`
}

// ComputeKPIs derives revenue, order count, and average order value from
// a fetched order set. The average is defined as 0 for an empty set.
func ComputeKPIs(orders []*domain.Order) KPIs {
	kpis := KPIs{TotalOrders: len(orders)}
	for _, order := range orders {
		kpis.TotalRevenue += order.TotalPrice
	}
	if kpis.TotalOrders > 0 {
		kpis.AverageOrderValue = kpis.TotalRevenue / float64(kpis.TotalOrders)
	}
	return kpis
}

// DashboardService produces the admin dashboard KPIs
type DashboardService interface {
	KPIs(ctx context.Context) (*KPIs, error)
}

type dashboardService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) DashboardService {
	return &dashboardService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// KPIs fetches the order set plus catalog and customer counts and
// aggregates them. Daily revenue is averaged over the span from the
// earliest order to now.
func (s *dashboardService) KPIs(ctx context.Context) (*KPIs, error) {
	listed, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for KPIs: %w", err)
	}

	orders := make([]*domain.Order, len(listed))
	for i := range listed {
		orders[i] = &listed[i].Order
	}

	kpis := ComputeKPIs(orders)

	kpis.TotalProducts, err = s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	kpis.TotalCustomers, err = s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	kpis.AvgDailyRevenue = avgDailyRevenue(orders, time.Now())

	return &kpis, nil
}

func avgDailyRevenue(orders []*domain.Order, now time.Time) float64 {
	if len(orders) == 0 {
		return 0
	}

	earliest := orders[0].CreatedAt
	var revenue float64
	for _, order := range orders {
		revenue += order.TotalPrice
		if order.CreatedAt.Before(earliest) {
			earliest = order.CreatedAt
		}
	}

	days := now.Sub(earliest).Hours() / 24
	if days < 1 {
		days = 1
	}
	return revenue / days
}

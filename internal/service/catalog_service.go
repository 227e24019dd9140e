package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lubristore/internal/domain"
	"lubristore/internal/repository"
	"lubristore/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrInvalidPackageSize = errors.New("package size must be positive")
)

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	PackageSize *float64
}

// CatalogService provides product read/write passthrough plus image
// upload for the admin dashboard.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	UploadProductImage(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*domain.Product, error)
	ImageURL(ref string) string
}

type catalogService struct {
	productRepo repository.ProductRepository
	images      storage.ImageStore
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, images storage.ImageStore) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		images:      images,
	}
}

// ListProducts retrieves the full catalog
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct validates and stores a new catalog entry
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		PackageSize: input.PackageSize,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct overwrites the editable fields of an existing product
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.PackageSize = input.PackageSize
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// UploadProductImage stores the image under a generated unique name and
// records the reference on the product.
func (s *catalogService) UploadProductImage(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	ref, _, err := s.images.Save(filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	product.ImageURL = ref
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to record product image: %w", err)
	}

	return product, nil
}

// ImageURL resolves a stored image reference to a public URL, with a
// placeholder fallback for products without one.
func (s *catalogService) ImageURL(ref string) string {
	return s.images.ResolveURL(ref)
}

func validateProductInput(input ProductInput) error {
	if input.Price < 0 {
		return ErrNegativePrice
	}
	if input.PackageSize != nil && *input.PackageSize <= 0 {
		return ErrInvalidPackageSize
	}
	return nil
}

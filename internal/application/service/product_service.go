package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// ProductService handles product and inventory operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	Name          string
	Code          string
	Unit          string
	SellingPrice  decimal.Decimal
	TaxRate       decimal.Decimal
	StockQuantity int
	AlertQuantity int
	Notes         *string
}

// CreateProduct creates a new product. Codes are unique.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("product code already exists")
	}

	if input.SellingPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("selling price cannot be negative")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.NewBadRequestError("tax rate must be between 0 and 100")
	}

	product := &entity.Product{
		Name:          input.Name,
		Code:          input.Code,
		Unit:          input.Unit,
		SellingPrice:  input.SellingPrice,
		TaxRate:       input.TaxRate,
		StockQuantity: input.StockQuantity,
		AlertQuantity: input.AlertQuantity,
		Notes:         input.Notes,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the input for updating a product
type UpdateProductInput struct {
	Name          *string
	Unit          *string
	SellingPrice  *decimal.Decimal
	TaxRate       *decimal.Decimal
	AlertQuantity *int
	Notes         *string
}

// UpdateProduct updates mutable product fields. Stock is adjusted only by
// invoicing, cancellation and purchase receiving, never by direct update.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("selling price cannot be negative")
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, apperror.NewBadRequestError("tax rate must be between 0 and 100")
		}
		product.TaxRate = *input.TaxRate
	}
	if input.AlertQuantity != nil {
		product.AlertQuantity = *input.AlertQuantity
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns a paginated list of products
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, p), nil
}

// ListLowStock returns products at or below their alert quantity
func (s *ProductService) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListLowStock(ctx)
}

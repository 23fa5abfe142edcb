package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// CustomerService handles customer and supplier operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// CustomerInput represents the input for creating or updating a customer
type CustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		TaxID:   input.TaxID,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.TaxID != nil {
		customer.TaxID = input.TaxID
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers returns a paginated list of customers
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, p), nil
}

// SupplierInput represents the input for creating or updating a supplier
type SupplierInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// CreateSupplier creates a new supplier
func (s *CustomerService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	supplier := &entity.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates an existing supplier
func (s *CustomerService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	supplier.Name = input.Name
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *CustomerService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers returns a paginated list of suppliers
func (s *CustomerService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, p), nil
}

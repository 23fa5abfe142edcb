package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/config"
	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// In-memory fakes for the repository interfaces. RecordPayment mirrors the
// real implementation's contract: callback under a lock, payment appended and
// invoice fields persisted together.

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.Invoice
	payments map[uuid.UUID][]entity.Payment
	nextNum  int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		payments: make(map[uuid.UUID][]entity.Payment),
		nextNum:  1,
	}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	cp := *invoice
	f.invoices[invoice.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.Payments = append([]entity.Payment(nil), f.payments[id]...)
	return &cp, nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Invoice
	for _, inv := range f.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) ListDue(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Invoice
	for _, inv := range f.invoices {
		if (inv.Status == enum.InvoiceStatusPending || inv.Status == enum.InvoiceStatusPartiallyPaid) && inv.AmountDue.IsPositive() {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (f *fakeInvoiceRepo) RecordPayment(ctx context.Context, invoiceID uuid.UUID, apply repository.PaymentApplyFunc) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.invoices[invoiceID]
	if !ok {
		return nil, nil
	}

	inv := *stored
	inv.Payments = append([]entity.Payment(nil), f.payments[invoiceID]...)

	payment, err := apply(&inv)
	if err != nil {
		return nil, err
	}

	payment.InvoiceID = invoiceID
	f.payments[invoiceID] = append(f.payments[invoiceID], *payment)
	stored.AmountPaid = inv.AmountPaid
	stored.AmountDue = inv.AmountDue
	stored.Status = inv.Status

	inv.Payments = append(inv.Payments, *payment)
	return &inv, nil
}

func (f *fakeInvoiceRepo) GetNextInvoiceNumber(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.nextNum
	f.nextNum++
	return n, nil
}

type fakeSettingsRepo struct {
	settings *entity.BusinessSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	if f.settings == nil {
		return nil, nil
	}
	cp := *f.settings
	return &cp, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings *entity.BusinessSettings) error {
	cp := *settings
	f.settings = &cp
	return nil
}

// newTestSettingsService returns a settings service backed by an in-memory
// row, with the default 18% labor tax rate.
func newTestSettingsService() *SettingsService {
	return NewSettingsService(&fakeSettingsRepo{}, config.FinanceConfig{
		CurrencyCode: "INR",
		LaborTaxRate: decimal.NewFromInt(18),
		TaxEnabled:   true,
		PrinterWidth: 32,
	})
}

// fakePaymentRepo reads from the invoice fake's payment log so both see the
// same history.
type fakePaymentRepo struct {
	invoices *fakeInvoiceRepo
}

func (f *fakePaymentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	f.invoices.mu.Lock()
	defer f.invoices.mu.Unlock()
	return append([]entity.Payment(nil), f.invoices.payments[invoiceID]...), nil
}

type fakeInvoiceItemRepo struct {
	items map[uuid.UUID][]entity.InvoiceItem
}

func newFakeInvoiceItemRepo() *fakeInvoiceItemRepo {
	return &fakeInvoiceItemRepo{items: make(map[uuid.UUID][]entity.InvoiceItem)}
}

func (f *fakeInvoiceItemRepo) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	for _, item := range items {
		f.items[item.InvoiceID] = append(f.items[item.InvoiceID], item)
	}
	return nil
}

type fakeQuotationRepo struct {
	quotations map[uuid.UUID]*entity.Quotation
	nextNum    int
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{quotations: make(map[uuid.UUID]*entity.Quotation), nextNum: 1}
}

func (f *fakeQuotationRepo) Create(ctx context.Context, quotation *entity.Quotation) error {
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	cp := *quotation
	f.quotations[quotation.ID] = &cp
	return nil
}

func (f *fakeQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	q, ok := f.quotations[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuotationRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeQuotationRepo) List(ctx context.Context, params *repository.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var out []entity.Quotation
	for _, q := range f.quotations {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (f *fakeQuotationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error {
	if q, ok := f.quotations[id]; ok {
		q.Status = status
	}
	return nil
}

func (f *fakeQuotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.quotations, id)
	return nil
}

func (f *fakeQuotationRepo) GetNextReferenceNumber(ctx context.Context) (int, error) {
	n := f.nextNum
	f.nextNum++
	return n, nil
}

type fakeQuotationItemRepo struct {
	items map[uuid.UUID][]entity.QuotationItem
}

func newFakeQuotationItemRepo() *fakeQuotationItemRepo {
	return &fakeQuotationItemRepo{items: make(map[uuid.UUID][]entity.QuotationItem)}
}

func (f *fakeQuotationItemRepo) CreateBatch(ctx context.Context, items []entity.QuotationItem) error {
	for _, item := range items {
		f.items[item.QuotationID] = append(f.items[item.QuotationID], item)
	}
	return nil
}

func (f *fakeQuotationItemRepo) DeleteByQuotationID(ctx context.Context, quotationID uuid.UUID) error {
	delete(f.items, quotationID)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	seen := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var insufficient []uuid.UUID
	for id, qty := range decrements {
		p, ok := f.products[id]
		if !ok || p.StockQuantity < qty {
			insufficient = append(insufficient, id)
		}
	}
	if len(insufficient) > 0 {
		return insufficient, nil
	}
	for id, qty := range decrements {
		f.products[id].StockQuantity -= qty
	}
	return nil, nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, qty := range increments {
		if p, ok := f.products[id]; ok {
			p.StockQuantity += qty
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	domainRepo "github.com/kamaug/opshub-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDashboardStats(ctx context.Context) (*domainRepo.DashboardStats, error) {
	stats := &domainRepo.DashboardStats{
		RevenueCollected: decimal.Zero,
		OutstandingDue:   decimal.Zero,
	}
	db := r.db.WithContext(ctx)

	if err := db.Model(&entity.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Quotation{}).Count(&stats.TotalQuotations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Invoice{}).Count(&stats.TotalInvoices).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Complaint{}).
		Where("status IN ?", []enum.ComplaintStatus{enum.ComplaintStatusOpen, enum.ComplaintStatusInProgress}).
		Count(&stats.OpenComplaints).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Product{}).
		Where("stock_quantity <= alert_quantity").
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Invoice{}).
		Where("status IN ?", []enum.InvoiceStatus{enum.InvoiceStatusPending, enum.InvoiceStatusPartiallyPaid}).
		Where("amount_due > 0").
		Count(&stats.InvoicesDueCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Invoice{}).
		Where("status = ?", enum.InvoiceStatusCancelled).
		Count(&stats.CancelledInvoices).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Quotation{}).
		Where("status = ?", enum.QuotationStatusApproved).
		Count(&stats.ApprovedQuotations).Error; err != nil {
		return nil, err
	}

	// Cancelled invoices keep their payment history but do not count
	// towards collected revenue or outstanding dues.
	var revenue struct {
		Collected decimal.NullDecimal
	}
	if err := db.Model(&entity.Payment{}).
		Select("SUM(payments.amount) AS collected").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.status <> ?", enum.InvoiceStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue.Collected.Valid {
		stats.RevenueCollected = revenue.Collected.Decimal
	}

	var due struct {
		Outstanding decimal.NullDecimal
	}
	if err := db.Model(&entity.Invoice{}).
		Select("SUM(amount_due) AS outstanding").
		Where("status IN ?", []enum.InvoiceStatus{enum.InvoiceStatusPending, enum.InvoiceStatusPartiallyPaid}).
		Where("amount_due > 0").
		Scan(&due).Error; err != nil {
		return nil, err
	}
	if due.Outstanding.Valid {
		stats.OutstandingDue = due.Outstanding.Decimal
	}

	return stats, nil
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardStats holds the aggregate figures shown on the dashboard
type DashboardStats struct {
	TotalCustomers     int64           `json:"total_customers"`
	TotalProducts      int64           `json:"total_products"`
	TotalQuotations    int64           `json:"total_quotations"`
	TotalInvoices      int64           `json:"total_invoices"`
	OpenComplaints     int64           `json:"open_complaints"`
	LowStockProducts   int64           `json:"low_stock_products"`
	RevenueCollected   decimal.Decimal `json:"revenue_collected"`
	OutstandingDue     decimal.Decimal `json:"outstanding_due"`
	InvoicesDueCount   int64           `json:"invoices_due_count"`
	CancelledInvoices  int64           `json:"cancelled_invoices"`
	ApprovedQuotations int64           `json:"approved_quotations"`
}

// AnalyticsRepository defines aggregate queries for the dashboard
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

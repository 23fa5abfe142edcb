package utils

import "fmt"

// QuotationReference formats a sequential quotation reference, e.g. "QT-000042".
func QuotationReference(n int) string {
	return fmt.Sprintf("QT-%06d", n)
}

// InvoiceNumber formats a sequential invoice number, e.g. "INV-000042".
func InvoiceNumber(n int) string {
	return fmt.Sprintf("INV-%06d", n)
}

// PurchaseNumber formats a sequential purchase order number, e.g. "PO-000042".
func PurchaseNumber(n int) string {
	return fmt.Sprintf("PO-%06d", n)
}

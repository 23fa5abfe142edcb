package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending       InvoiceStatus = 0
	InvoiceStatusPartiallyPaid InvoiceStatus = 1
	InvoiceStatusPaid          InvoiceStatus = 2
	InvoiceStatusCancelled     InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Pending", "Partially Paid", "Paid", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// IsTerminal reports whether no transition may leave this status.
// Paid and Cancelled invoices never change again.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanTransition reports whether moving from s to target is a legal transition.
// Pending -> Partially Paid -> Paid accumulate monotonically as payments come in;
// Cancelled is only reachable from Pending or Partially Paid by explicit
// administrative action.
func (s InvoiceStatus) CanTransition(target InvoiceStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case InvoiceStatusPending:
		return target == InvoiceStatusPartiallyPaid ||
			target == InvoiceStatusPaid ||
			target == InvoiceStatusCancelled
	case InvoiceStatusPartiallyPaid:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	}
	return false
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = InvoiceStatusPending
	case "Partially Paid":
		*s = InvoiceStatusPartiallyPaid
	case "Paid":
		*s = InvoiceStatusPaid
	case "Cancelled":
		*s = InvoiceStatusCancelled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}

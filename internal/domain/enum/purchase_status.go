package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseStatus represents the status of a purchase order
type PurchaseStatus int

const (
	PurchaseStatusOrdered   PurchaseStatus = 0
	PurchaseStatusReceived  PurchaseStatus = 1
	PurchaseStatusCancelled PurchaseStatus = 2
)

func (s PurchaseStatus) String() string {
	names := [...]string{"Ordered", "Received", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Ordered"
	}
	return names[s]
}

// IsTerminal reports whether the purchase order can no longer change status.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusReceived || s == PurchaseStatusCancelled
}

// CanTransition reports whether moving from s to target is a legal transition.
func (s PurchaseStatus) CanTransition(target PurchaseStatus) bool {
	return s == PurchaseStatusOrdered &&
		(target == PurchaseStatusReceived || target == PurchaseStatusCancelled)
}

func (s PurchaseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseStatus(i)
		return nil
	}
	switch str {
	case "Ordered":
		*s = PurchaseStatusOrdered
	case "Received":
		*s = PurchaseStatusReceived
	case "Cancelled":
		*s = PurchaseStatusCancelled
	}
	return nil
}

func (s PurchaseStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseStatusOrdered
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseStatus(v)
	case int:
		*s = PurchaseStatus(v)
	}
	return nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus int

const (
	QuotationStatusDraft    QuotationStatus = 0
	QuotationStatusSent     QuotationStatus = 1
	QuotationStatusApproved QuotationStatus = 2
	QuotationStatusRejected QuotationStatus = 3
)

func (s QuotationStatus) String() string {
	names := [...]string{"Draft", "Sent", "Approved", "Rejected"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// IsTerminal reports whether the quotation can no longer change status.
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusApproved || s == QuotationStatusRejected
}

// CanTransition reports whether moving from s to target is a legal transition.
// Draft -> Sent -> Approved | Rejected.
func (s QuotationStatus) CanTransition(target QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft:
		return target == QuotationStatusSent
	case QuotationStatusSent:
		return target == QuotationStatusApproved || target == QuotationStatusRejected
	}
	return false
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuotationStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = QuotationStatusDraft
	case "Sent":
		*s = QuotationStatusSent
	case "Approved":
		*s = QuotationStatusApproved
	case "Rejected":
		*s = QuotationStatusRejected
	}
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuotationStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuotationStatus(v)
	case int:
		*s = QuotationStatus(v)
	}
	return nil
}

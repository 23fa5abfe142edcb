package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ComplaintStatus represents the status of a customer complaint
type ComplaintStatus int

const (
	ComplaintStatusOpen       ComplaintStatus = 0
	ComplaintStatusInProgress ComplaintStatus = 1
	ComplaintStatusResolved   ComplaintStatus = 2
	ComplaintStatusClosed     ComplaintStatus = 3
)

func (s ComplaintStatus) String() string {
	names := [...]string{"Open", "In Progress", "Resolved", "Closed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

// CanTransition reports whether moving from s to target is a legal transition.
// Open -> In Progress -> Resolved | Closed; a resolved complaint can still be closed.
func (s ComplaintStatus) CanTransition(target ComplaintStatus) bool {
	switch s {
	case ComplaintStatusOpen:
		return target == ComplaintStatusInProgress || target == ComplaintStatusClosed
	case ComplaintStatusInProgress:
		return target == ComplaintStatusResolved || target == ComplaintStatusClosed
	case ComplaintStatusResolved:
		return target == ComplaintStatusClosed
	}
	return false
}

func (s ComplaintStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ComplaintStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ComplaintStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = ComplaintStatusOpen
	case "In Progress":
		*s = ComplaintStatusInProgress
	case "Resolved":
		*s = ComplaintStatusResolved
	case "Closed":
		*s = ComplaintStatusClosed
	}
	return nil
}

func (s ComplaintStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ComplaintStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ComplaintStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ComplaintStatus(v)
	case int:
		*s = ComplaintStatus(v)
	}
	return nil
}

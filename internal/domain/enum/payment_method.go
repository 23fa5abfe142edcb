package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an invoice payment was made
type PaymentMethod int

const (
	PaymentMethodOnline PaymentMethod = 0
	PaymentMethodCash   PaymentMethod = 1
	PaymentMethodCard   PaymentMethod = 2
	PaymentMethodOther  PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"Online", "Cash", "Card", "Other"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Other"
	}
	return names[m]
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodOnline && m <= PaymentMethodOther
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Online":
		*m = PaymentMethodOnline
	case "Cash":
		*m = PaymentMethodCash
	case "Card":
		*m = PaymentMethodCard
	case "Other":
		*m = PaymentMethodOther
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexDecimal is an optional decimal that can be unmarshaled from a JSON number,
// a numeric string, an empty string or null. Empty and null leave it unset.
type FlexDecimal struct {
	decimal.Decimal
	Set bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	*f = FlexDecimal{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("FlexDecimal: invalid decimal string %q: %w", s, err)
		}
		*f = FlexDecimal{Decimal: d, Set: true}
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("FlexDecimal: unexpected value %s", data)
	}
	*f = FlexDecimal{Decimal: d, Set: true}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(f.Decimal.String()), nil
}

// Ptr returns the value, or nil when unset.
func (f FlexDecimal) Ptr() *decimal.Decimal {
	if !f.Set {
		return nil
	}
	d := f.Decimal
	return &d
}

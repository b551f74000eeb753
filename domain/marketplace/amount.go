package marketplace

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when an amount was supplied but is not a number.
var ErrNotNumeric = errors.New("amount is not a number")

// Amount is a loosely typed money value as submitted by clients: a JSON
// number, a numeric string, or nothing at all. Null, empty strings and the
// JSON number zero count as not provided; any non-empty string, "0"
// included, counts as provided.
type Amount struct {
	value float64
	raw   string
	set   bool
	text  bool
	bad   bool
}

// NewAmount returns an Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{value: v, set: true}
}

// ParseAmount interprets free text the same way the JSON decoder does.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{raw: s, bad: true}
	}
	return Amount{value: f, raw: s, set: true, text: true}
}

// Provided reports whether a value (valid or not) was supplied. A zero only
// counts when it came in as text.
func (a Amount) Provided() bool {
	return a.bad || (a.set && (a.text || a.value != 0))
}

// Float64 returns the numeric value, or ErrNotNumeric if the input could not
// be parsed.
func (a Amount) Float64() (float64, error) {
	if a.bad {
		return 0, ErrNotNumeric
	}
	return a.value, nil
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Amount{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			// booleans, objects and arrays are kept as unparseable input
			*a = Amount{raw: string(data), bad: true}
			return nil
		}
		*a = NewAmount(f)
		return nil
	}
}

// MarshalJSON writes the value back in a form UnmarshalJSON round-trips.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case a.bad, a.text:
		return json.Marshal(a.raw)
	case !a.set:
		return []byte("null"), nil
	default:
		return json.Marshal(a.value)
	}
}

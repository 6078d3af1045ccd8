package dof

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnknownToken is the textual marker accepted for an unknown entry in model files
const UnknownToken = "unk"

// Value is one entry of a DOF vector: either a known scalar or unknown.
// The zero Value is Unknown.
type Value struct {
	v     float64
	known bool
}

// Known returns a prescribed entry
func Known(v float64) Value { return Value{v: v, known: true} }

// Unknown returns an entry to be solved for
func Unknown() Value { return Value{} }

// IsKnown reports whether the entry carries a prescribed value
func (d Value) IsKnown() bool { return d.known }

// Float returns the scalar and whether it is known
func (d Value) Float() (float64, bool) { return d.v, d.known }

func (d Value) String() string {
	if !d.known {
		return UnknownToken
	}
	return strconv.FormatFloat(d.v, 'g', -1, 64)
}

// MarshalJSON writes unknown entries as null
func (d Value) MarshalJSON() ([]byte, error) {
	if !d.known {
		return []byte("null"), nil
	}
	return json.Marshal(d.v)
}

// UnmarshalJSON accepts a number, null, or the string "unk"
func (d *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Unknown()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != UnknownToken {
			return fmt.Errorf("dof: invalid entry %q, expected a number, null or %q", s, UnknownToken)
		}
		*d = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("dof: invalid entry %s: %w", data, err)
	}
	*d = Known(v)
	return nil
}

package bag

import (
	"encoding/json"
	"fmt"
)

// wireValue is the typed JSON envelope for one bag entry. The kind tag keeps
// ints and strings distinguishable after a JSON round trip.
type wireValue struct {
	Kind    string   `json:"kind"`
	String  string   `json:"string,omitempty"`
	Int     int      `json:"int,omitempty"`
	Strings []string `json:"strings,omitempty"`
}

const (
	kindString  = "s"
	kindInt     = "i"
	kindStrings = "ss"
)

// Encode flattens the bag to its JSON wire form.
func (b *Bag) Encode() ([]byte, error) {
	wire := make(map[string]wireValue, len(b.values))
	for key, v := range b.values {
		switch t := v.(type) {
		case string:
			wire[key] = wireValue{Kind: kindString, String: t}
		case int:
			wire[key] = wireValue{Kind: kindInt, Int: t}
		case []string:
			wire[key] = wireValue{Kind: kindStrings, Strings: t}
		default:
			return nil, fmt.Errorf("bag value %q has unsupported kind %T", key, v)
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode bag: %w", err)
	}
	return data, nil
}

// Decode reconstructs a bag from its JSON wire form.
func Decode(data []byte) (*Bag, error) {
	var wire map[string]wireValue
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode bag: %w", err)
	}
	b := New()
	for key, v := range wire {
		switch v.Kind {
		case kindString:
			b.AddString(key, v.String)
		case kindInt:
			b.AddInt(key, v.Int)
		case kindStrings:
			b.AddStrings(key, v.Strings)
		default:
			return nil, fmt.Errorf("bag entry %q has unknown wire kind %q", key, v.Kind)
		}
	}
	return b, nil
}

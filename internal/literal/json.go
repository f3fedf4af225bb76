package literal

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes d as a JSON object in insertion order. Keys that are
// not strings are written in literal syntax.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range d.items {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, ok := item.Key.(string)
		if !ok {
			key = Repr(item.Key)
		}

		k, err := marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := marshal(item.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes s as a JSON array.
func (s *Set) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return marshal(s.values)
}

// MarshalJSON encodes b as a JSON string rather than base64.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return marshal(string(b))
}

// marshal is json.Marshal without HTML escaping, so '<', '>' and '&' stay
// as written. Callers encoding with HTML escaping still get it applied.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

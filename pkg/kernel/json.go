package kernel

import (
	"bytes"

	"github.com/segmentio/encoding/json"
)

// MarshalJSON encodes the dictionary as a JSON object preserving insertion
// order, the order the kernel receives entries in
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes a reference in the kernel's reference format
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type": "ref",
		"id":   r.ID,
	})
}

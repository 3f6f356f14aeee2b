package api

import (
	"bytes"
	"encoding/json"
)

// Codec is the Connect codec for api messages. It registers under the name
// "json", so Connect clients speak application/json (or application/connect+json
// for streams).
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec. Unknown fields are rejected so that
// typos in field names fail loudly instead of zeroing a total.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

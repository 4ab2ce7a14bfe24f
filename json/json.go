// Package json provides a JSON codec that sanitizes decoded values.
package json

import (
	"encoding/json"

	"github.com/zoobzio/scrub"
)

// jsonCodec implements scrub.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec whose Unmarshal applies e to the decoded value.
// A nil engine means scrub.Default().
func New(e *scrub.Engine) scrub.Codec {
	return scrub.Decoding(e, &jsonCodec{})
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Package xml provides a XML codec that sanitizes decoded values.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/scrub"
)

// xmlCodec implements scrub.Codec for XML.
type xmlCodec struct{}

// New returns a XML codec whose Unmarshal applies e to the decoded value.
// A nil engine means scrub.Default().
func New(e *scrub.Engine) scrub.Codec {
	return scrub.Decoding(e, &xmlCodec{})
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

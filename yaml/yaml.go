// Package yaml provides a YAML codec that sanitizes decoded values.
package yaml

import (
	"github.com/zoobzio/scrub"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements scrub.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec whose Unmarshal applies e to the decoded value.
// A nil engine means scrub.Default().
func New(e *scrub.Engine) scrub.Codec {
	return scrub.Decoding(e, &yamlCodec{})
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

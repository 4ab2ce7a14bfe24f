// Package bson provides a BSON codec that sanitizes decoded values.
package bson

import (
	"github.com/zoobzio/scrub"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements scrub.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec whose Unmarshal applies e to the decoded value.
// A nil engine means scrub.Default().
func New(e *scrub.Engine) scrub.Codec {
	return scrub.Decoding(e, &bsonCodec{})
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Package msgpack provides a MessagePack codec that sanitizes decoded values.
package msgpack

import (
	"github.com/zoobzio/scrub"
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackCodec implements scrub.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec whose Unmarshal applies e to the decoded value.
// A nil engine means scrub.Default().
func New(e *scrub.Engine) scrub.Codec {
	return scrub.Decoding(e, &msgpackCodec{})
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

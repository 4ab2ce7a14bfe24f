package scrub

import "context"

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Decoding wraps a codec so that every successful Unmarshal is followed by
// Apply on the decoded value. Marshal is passed through untouched.
// A nil engine means the default engine.
func Decoding(e *Engine, c Codec) Codec {
	if e == nil {
		e = Default()
	}
	return &decodingCodec{engine: e, codec: c}
}

type decodingCodec struct {
	engine *Engine
	codec  Codec
}

func (d *decodingCodec) ContentType() string {
	return d.codec.ContentType()
}

func (d *decodingCodec) Marshal(v any) ([]byte, error) {
	return d.codec.Marshal(v)
}

func (d *decodingCodec) Unmarshal(data []byte, v any) error {
	if err := d.codec.Unmarshal(data, v); err != nil {
		return err
	}
	return d.engine.Apply(context.Background(), v)
}

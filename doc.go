// Package scrub provides declarative field sanitization for Go structs.
//
// Fields declare an ordered list of transformers in a struct tag. An Engine
// discovers those declarations once per type, caches the resulting Plan, and
// rewrites the fields of a record in place.
//
// # Tag Syntax
//
//	type User struct {
//	    Email      string  `scrub:"trim,lower"`
//	    CardNumber string  `scrub:"mask_card"`
//	    Nickname   *string `scrub:"trim,null_if_blank"`
//	    Address    Address // nested structs are walked
//	    Internal   Meta    `scrub:"-"`
//	}
//
// Names are applied left to right; each transformer sees the value written by
// the one before it. Supported field shapes are E, *E, []E, []*E, map[K]E and
// map[K]*E, where E is the transformer's value type or a named type of the
// same kind.
//
// # Basic Usage
//
//	user := &User{Email: "  Alice@Example.COM "}
//	if err := scrub.Apply(ctx, user); err != nil {
//	    // configuration problem with User, e.g. an unknown transformer name
//	}
//	// user.Email == "alice@example.com"
//
// # Custom Transformers
//
// A transformer operates on pointers so that nil can represent an absent
// value:
//
//	type Redact struct{}
//
//	func (Redact) Sanitize(v *string) *string {
//	    if v == nil {
//	        return nil
//	    }
//	    out := "[redacted]"
//	    return &out
//	}
//
//	engine := scrub.New(scrub.WithEntries(scrub.Instance[string]("redact", Redact{})))
//
// # Failure Handling
//
// Problems with a type's declarations are returned as *ConfigError and are
// never cached. Problems with a single field while applying (an unexported
// field, a record passed by value, a panicking transformer) skip that field,
// are emitted on SignalFieldSkipped, and never fail the call.
//
// # Codec Providers
//
// The json, xml, yaml, msgpack and bson packages provide codecs that sanitize
// every value they decode.
package scrub

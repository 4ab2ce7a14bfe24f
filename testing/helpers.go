// Package testing provides test utilities for scrub.
package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/scrub"
)

// TestEngine returns a fresh engine with an empty plan cache.
func TestEngine(tb testing.TB, opts ...scrub.Option) *scrub.Engine {
	tb.Helper()
	e := scrub.New(opts...)
	tb.Cleanup(e.Reset)
	return e
}

// MustApply sanitizes record and fails the test on a configuration error.
func MustApply(tb testing.TB, e *scrub.Engine, record any) {
	tb.Helper()
	require.NoError(tb, e.Apply(context.Background(), record))
}

// RequireRules asserts the transformer names planned for each field of T, in order.
func RequireRules[T any](tb testing.TB, e *scrub.Engine, want map[string][]string) {
	tb.Helper()
	plan, err := scrub.PlanFor[T](e)
	require.NoError(tb, err)

	got := make(map[string][]string)
	for _, r := range plan.Rules() {
		got[r.Field] = append(got[r.Field], r.Transformer)
	}
	require.Equal(tb, want, got)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// SimpleUser is a test type with no sanitization tags.
type SimpleUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Address is a nested test type.
type Address struct {
	Street  string `json:"street" scrub:"collapse_whitespace"`
	City    string `json:"city" scrub:"trim,title"`
	Country string `json:"country" scrub:"trim,upper"`
}

// Customer is a test type covering every supported field shape.
type Customer struct {
	ID         string            `json:"id"`
	Email      string            `json:"email" scrub:"trim,lower"`
	CardNumber string            `json:"card_number" scrub:"mask_card"`
	SSN        string            `json:"ssn" scrub:"mask_ssn"`
	Phone      string            `json:"phone" scrub:"phone_e164"`
	Nickname   *string           `json:"nickname,omitempty" scrub:"trim,null_if_blank"`
	Bio        string            `json:"bio" scrub:"strip_html,collapse_whitespace"`
	Tags       []string          `json:"tags" scrub:"trim,lower"`
	Labels     map[string]string `json:"labels" scrub:"trim"`
	Home       Address           `json:"home"`
	Work       *Address          `json:"work,omitempty"`
	Raw        Address           `json:"raw" scrub:"-"`
}

// NewCustomer returns a Customer full of values that need sanitizing.
func NewCustomer() *Customer {
	return &Customer{
		ID:         "c-1",
		Email:      "  Alice@Example.COM ",
		CardNumber: "4111-1111-1111-1234",
		SSN:        "123-45-6789",
		Phone:      "+1 (555) 123-4567",
		Nickname:   Ptr("   "),
		Bio:        "<p>Hello   <b>world</b></p>",
		Tags:       []string{" VIP ", "Beta"},
		Labels:     map[string]string{"source": "  web  "},
		Home:       Address{Street: "1  Main   St", City: "  springfield ", Country: " us"},
		Work:       &Address{Street: "2 Side St", City: "SHELBYVILLE", Country: "us "},
		Raw:        Address{City: "  untouched  "},
	}
}

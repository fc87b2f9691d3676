package options

import "github.com/samber/oops"

// Validator turns a raw value into the canonical form stored by a Setting,
// or rejects it. Implementations must be pure.
type Validator[V comparable] interface {
	Validate(raw any) (V, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc[V comparable] func(raw any) (V, error)

// Validate calls f(raw).
func (f ValidatorFunc[V]) Validate(raw any) (V, error) {
	return f(raw)
}

// Identity accepts raw values that already have type V and rejects anything else.
func Identity[V comparable]() Validator[V] {
	return ValidatorFunc[V](func(raw any) (V, error) {
		v, ok := raw.(V)
		if !ok {
			var zero V
			return zero, oops.Errorf("expected %T, got %T", zero, raw)
		}
		return v, nil
	})
}

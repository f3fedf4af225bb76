package kwargs

import (
	"context"

	"github.com/gabapcia/dictkit/internal/pkg/logger"
)

// Defaulter is implemented by owners exposing their default mapping through
// the conventional accessor used by Wrap.
type Defaulter interface {
	Defaults() Kwargs
}

// Method is a method expression taking keyword arguments: owner is the
// receiver, kw the keyword mapping and args the positional arguments.
type Method[T, R any] func(owner T, kw Kwargs, args ...any) (R, error)

// Wrap decorates m so that every call receives the owner's Defaults()
// merged with the caller's keyword arguments.
func Wrap[T Defaulter, R any](m Method[T, R]) Method[T, R] {
	return WrapWith(func(owner T) Kwargs { return owner.Defaults() }, m)
}

// WrapWith decorates m so that every call receives source(owner) merged with
// the caller's keyword arguments. Passing a different source per method lets
// one owner expose several default profiles.
//
// Unknown keywords make the call fail with an *UnexpectedArgumentError before
// m runs. Positional arguments are passed through unchanged.
func WrapWith[T, R any](source func(owner T) Kwargs, m Method[T, R]) Method[T, R] {
	return func(owner T, kw Kwargs, args ...any) (R, error) {
		merged, err := Merge(source(owner), kw)
		if err != nil {
			logger.Debug(context.Background(), "keyword arguments rejected", "error", err)

			var zero R
			return zero, err
		}

		return m(owner, merged, args...)
	}
}

// Package kwargs merges caller-supplied keyword arguments with a default
// mapping owned by the receiver of a method.
//
// The default mapping fixes the set of accepted keywords: callers may replace
// any default value but can never add a key. A method wrapped with Wrap or
// WrapWith always receives a complete mapping, so it can read every keyword
// without existence checks:
//
//	type Person struct{ Name, City, DOB string }
//
//	func (*Person) Defaults() kwargs.Kwargs {
//	    return kwargs.Kwargs{"name": "Allan", "city": "Berlin", "dob": "01/01/01"}
//	}
//
//	var initPerson = kwargs.Wrap(func(p *Person, kw kwargs.Kwargs, _ ...any) (*Person, error) {
//	    p.Name, p.City, p.DOB = kw["name"].(string), kw["city"].(string), kw["dob"].(string)
//	    return p, nil
//	})
//
//	p, err := initPerson(&Person{}, kwargs.Kwargs{"city": "Paris"})
package kwargs

import (
	"errors"
	"fmt"
	"maps"

	"github.com/gabapcia/dictkit/internal/pkg/types"
)

// ErrUnexpectedArgument is matched by every error reporting keyword
// arguments that are absent from the default mapping.
var ErrUnexpectedArgument = errors.New("unexpected keyword argument")

// UnexpectedArgumentError lists the keyword arguments rejected by Merge.
type UnexpectedArgumentError struct {
	Keys []string // offending keys in ascending order
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("got unexpected keyword arguments: %q", e.Keys)
}

func (e *UnexpectedArgumentError) Unwrap() error {
	return ErrUnexpectedArgument
}

// Kwargs maps keyword names to values. Default mappings, caller overlays and
// merged results all share this type.
type Kwargs map[string]any

// Clone returns a shallow copy of k. The copy is never nil.
func (k Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(k))
	maps.Copy(out, k)
	return out
}

// Keys returns the keys of k in ascending order.
func (k Kwargs) Keys() []string {
	return types.Sorted(types.SetOf(k))
}

// Merge returns a fresh copy of defaults with the values of overlay applied.
//
// If overlay holds any key missing from defaults, Merge returns an
// *UnexpectedArgumentError naming all such keys and no mapping. defaults is
// never modified, and the result always has exactly the keys of defaults.
func Merge(defaults, overlay Kwargs) (Kwargs, error) {
	unexpected := types.SetOf(overlay).Difference(types.SetOf(defaults))
	if len(unexpected) > 0 {
		return nil, &UnexpectedArgumentError{Keys: types.Sorted(unexpected)}
	}

	merged := defaults.Clone()
	maps.Copy(merged, overlay)
	return merged, nil
}

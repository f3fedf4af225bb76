package literal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrUnhashable is returned when a list, set or mapping is used as a mapping
// key or set element.
var ErrUnhashable = errors.New("unhashable type")

// ErrNonStringKey is returned by Dict.StringMap when a key is not a string.
var ErrNonStringKey = errors.New("mapping key is not a string")

// Bytes is the value of a bytes literal such as b'\x00'.
type Bytes []byte

// List is the value of a list display such as [1, 2].
type List []any

// Tuple is the value of a tuple display such as (1, 2).
type Tuple []any

// Item is a single key/value pair of a Dict.
type Item struct {
	Key   any
	Value any
}

// Dict is an insertion-ordered mapping. Keys follow literal equality:
// 1, 1.0 and True are the same key. Setting an existing key keeps its
// original position and replaces its value.
type Dict struct {
	items []Item
	index map[string]int
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// DictOf builds a Dict from alternating keys and values. It panics if kv has
// an odd length or holds an unhashable key; it is meant for fixed values.
func DictOf(kv ...any) *Dict {
	if len(kv)%2 != 0 {
		panic("literal: DictOf needs an even number of arguments")
	}

	d := NewDict()
	for i := 0; i < len(kv); i += 2 {
		if err := d.Set(kv[i], kv[i+1]); err != nil {
			panic(err)
		}
	}
	return d
}

// Set stores value under key.
func (d *Dict) Set(key, value any) error {
	h, err := hashKey(key)
	if err != nil {
		return err
	}

	if i, ok := d.index[h]; ok {
		d.items[i].Value = value
		return nil
	}

	d.index[h] = len(d.items)
	d.items = append(d.items, Item{Key: key, Value: value})
	return nil
}

// Get returns the value stored under key.
func (d *Dict) Get(key any) (any, bool) {
	h, err := hashKey(key)
	if err != nil {
		return nil, false
	}

	i, ok := d.index[h]
	if !ok {
		return nil, false
	}
	return d.items[i].Value, true
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.items)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []any {
	keys := make([]any, len(d.items))
	for i, item := range d.items {
		keys[i] = item.Key
	}
	return keys
}

// Items returns a copy of the entries in insertion order.
func (d *Dict) Items() []Item {
	return append([]Item(nil), d.items...)
}

// StringMap converts d into a map keyed by string. Values are not converted.
// It fails with ErrNonStringKey if any key is not a string.
func (d *Dict) StringMap() (map[string]any, error) {
	out := make(map[string]any, len(d.items))
	for _, item := range d.items {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNonStringKey, Repr(item.Key))
		}
		out[key] = item.Value
	}
	return out, nil
}

// Set is an insertion-ordered set of hashable values.
type Set struct {
	values []any
	index  map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// SetOf builds a Set from values. It panics on unhashable values.
func SetOf(values ...any) *Set {
	s := NewSet()
	for _, v := range values {
		if err := s.Add(v); err != nil {
			panic(err)
		}
	}
	return s
}

// Add inserts v unless an equal value is already present.
func (s *Set) Add(v any) error {
	h, err := hashKey(v)
	if err != nil {
		return err
	}

	if _, ok := s.index[h]; ok {
		return nil
	}

	s.index[h] = struct{}{}
	s.values = append(s.values, v)
	return nil
}

// Has reports whether an equal value is a member of s.
func (s *Set) Has(v any) bool {
	h, err := hashKey(v)
	if err != nil {
		return false
	}

	_, ok := s.index[h]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.values)
}

// Values returns the members in insertion order.
func (s *Set) Values() []any {
	return append([]any(nil), s.values...)
}

// hashKey returns the identity of a hashable value. Numerically equal ints,
// floats and bools share one identity.
func hashKey(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "none", nil
	case bool:
		if v {
			return "int:1", nil
		}
		return "int:0", nil
	case int64:
		return "int:" + strconv.FormatInt(v, 10), nil
	case *big.Int:
		return "int:" + v.String(), nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			i, _ := big.NewFloat(v).Int(nil)
			return "int:" + i.String(), nil
		}
		return "float:" + strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return "str:" + strconv.Quote(v), nil
	case Bytes:
		return "bytes:" + strconv.Quote(string(v)), nil
	case Tuple:
		parts := make([]string, len(v))
		for i, elem := range v {
			h, err := hashKey(elem)
			if err != nil {
				return "", err
			}
			parts[i] = h
		}
		return "tuple:(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnhashable, TypeName(v))
	}
}

// TypeName returns the literal type name of v, such as "dict" or "NoneType".
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case int64, *big.Int:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case Bytes:
		return "bytes"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case *Set:
		return "set"
	case *Dict:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}

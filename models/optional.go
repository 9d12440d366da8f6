package models

// Optional tracks whether a value was supplied at all, so that "absent" and
// "set to the zero value" are different things in a patch.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

func (o Optional[T]) addTo(m map[string]any, key string) {
	if o.Set {
		m[key] = o.Value
	}
}

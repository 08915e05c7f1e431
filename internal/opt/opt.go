// Package opt holds an explicit present/absent value used for optional
// request fields such as search filters and product price.
package opt

// Value is either present with a value or absent. The zero Value is absent.
type Value[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr maps nil to absent.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

func (o Value[T]) IsSet() bool {
	return o.ok
}

func (o Value[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

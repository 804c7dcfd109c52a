// Package boxed is the heap-backed counterpart of anycell, kept for
// comparison on hosted targets. It carries the same surface (New, Load,
// Mut, Take) but every value lives behind an interface on the heap.
// Builds that never import it carry none of it.
package boxed

// Box owns one heap-allocated value of an erased type.
type Box struct {
	v any // always a *T, so Mut can hand out an in-place view
}

// New moves v to the heap inside a fresh box.
func New[T any](v T) *Box {
	p := new(T)
	*p = v
	return &Box{v: p}
}

// Load returns a copy of the boxed value if it is a T.
func Load[T any](b *Box) (T, bool) {
	if p, ok := b.v.(*T); ok {
		return *p, true
	}
	var zero T
	return zero, false
}

// Mut returns an in-place view of the boxed value if it is a T.
func Mut[T any](b *Box) (*T, bool) {
	p, ok := b.v.(*T)
	return p, ok
}

// Take moves the value out and empties the box.
func Take[T any](b *Box) (T, bool) {
	if p, ok := b.v.(*T); ok {
		b.v = nil
		return *p, true
	}
	var zero T
	return zero, false
}

// Empty reports whether the box holds no value.
func (b *Box) Empty() bool { return b.v == nil }

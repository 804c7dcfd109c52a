package anycell

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/rawbytedev/anycell/internal/common"
)

var (
	ErrTooLarge       = errors.New("value larger than cell capacity")
	ErrUnsafePointers = errors.New("pointer-carrying value in raw buffer needs Options.UnsafePointers")
	ErrBufferMismatch = errors.New("pointer-carrying buffer only stores values of the buffer type")
	ErrMisaligned     = errors.New("buffer alignment below value requirement")
)

// Options control the unsafe opt-ins of cell construction.
type Options struct {
	// UnsafePointers allows storing pointer-carrying values in a raw
	// (pointer-free) buffer. The collector cannot see those pointers;
	// the caller must keep the referents alive for the cell's lifetime.
	UnsafePointers bool

	// CheckAlignment verifies the buffer satisfies the stored type's
	// alignment before the bytes are reinterpreted.
	CheckAlignment bool
}

// Destructor is implemented by values that own resources needing cleanup.
// When a stored type implements it, the cell forwards Destroy through an
// erased callback bound at construction.
type Destructor interface {
	Destroy()
}

var destructorType = reflect.TypeFor[Destructor]()

// Cell stores one value of any type whose size fits inside B, inline and
// without heap allocation. B is the backing buffer type, normally one of
// the BufN arrays or, via Of, the stored type itself. The zero Cell is
// empty. Cells are not synchronized: Load may run concurrently with Load,
// everything else needs external exclusion.
type Cell[B any] struct {
	id   reflect.Type
	buf  B // kept after the two-word id field so it sits 8-byte aligned
	drop func(unsafe.Pointer)
}

// NewWith copies v into a fresh cell backed by B. The cell owns the value
// from here on: the caller must treat v as moved-from and must not call
// Destroy on the original. Fails with ErrTooLarge when v does not fit, and
// with ErrUnsafePointers/ErrBufferMismatch when storing would hide pointers
// from the collector (see Options and Of).
func NewWith[B, T any](v T, opts Options) (Cell[B], error) {
	var c Cell[B]
	size := unsafe.Sizeof(v)
	if size > unsafe.Sizeof(c.buf) {
		return c, ErrTooLarge
	}
	bt := reflect.TypeFor[B]()
	vt := reflect.TypeFor[T]()
	if common.HasPointers(bt) {
		// A typed buffer carries a pointer map; foreign bit patterns in
		// its pointer slots would crash the collector.
		if vt != bt {
			return c, ErrBufferMismatch
		}
	} else if common.HasPointers(vt) && !opts.UnsafePointers {
		return c, ErrUnsafePointers
	}
	if opts.CheckAlignment && unsafe.Alignof(v) > max(8, unsafe.Alignof(c.buf)) {
		return c, ErrMisaligned
	}

	if vt == bt {
		// Typed copy keeps write barriers intact for pointer slots.
		c.buf = *(*B)(unsafe.Pointer(&v))
	} else if size > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&c.buf)), size)
		copy(dst, src)
	}
	c.id = vt
	c.drop = dropFuncFor[T](vt)
	return c, nil
}

// New is NewWith with default options.
func New[B, T any](v T) (Cell[B], error) {
	return NewWith[B](v, Options{})
}

// MustNew is the fail-fast twin of New.
func MustNew[B, T any](v T) Cell[B] {
	c, err := New[B](v)
	if err != nil {
		panic(fmt.Sprintf("anycell: new %v into %v: %v", reflect.TypeFor[T](), reflect.TypeFor[B](), err))
	}
	return c
}

// Of builds a cell whose buffer type is T itself, so the capacity equals
// the value's size by construction and the pairing is checked at compile
// time. The buffer keeps T's pointer map, so unlike the raw-buffer
// constructors Of accepts pointer-carrying types safely.
func Of[T any](v T) Cell[T] {
	return Cell[T]{
		id:   reflect.TypeFor[T](),
		buf:  v,
		drop: dropFuncFor[T](reflect.TypeFor[T]()),
	}
}

// Load returns a copy of the stored value if the cell currently holds a T.
func Load[T, B any](c *Cell[B]) (T, bool) {
	if c.id != reflect.TypeFor[T]() {
		var zero T
		return zero, false
	}
	return *(*T)(unsafe.Pointer(&c.buf)), true
}

// Mut returns an exclusive in-place view of the stored value if the cell
// currently holds a T. Mutating through it never changes the cell's
// identity or size. The pointer is valid until the cell is freed or taken.
func Mut[T, B any](c *Cell[B]) (*T, bool) {
	if c.id != reflect.TypeFor[T]() {
		return nil, false
	}
	return (*T)(unsafe.Pointer(&c.buf)), true
}

// Take moves the stored value out of the cell. On success the destroy
// callback is disarmed and the cell becomes empty, so cleanup runs exactly
// once, from the returned value. On mismatch the cell is left untouched.
func Take[T, B any](c *Cell[B]) (T, bool) {
	if c.id != reflect.TypeFor[T]() {
		var zero T
		return zero, false
	}
	v := *(*T)(unsafe.Pointer(&c.buf))
	c.clear()
	return v, true
}

// Is reports whether the cell currently holds a T.
func Is[T, B any](c *Cell[B]) bool {
	return c.id == reflect.TypeFor[T]()
}

// MustLoad is the fail-fast twin of Load.
func MustLoad[T, B any](c *Cell[B]) T {
	v, ok := Load[T](c)
	if !ok {
		panic(mismatch[T](c.id))
	}
	return v
}

// MustMut is the fail-fast twin of Mut.
func MustMut[T, B any](c *Cell[B]) *T {
	p, ok := Mut[T](c)
	if !ok {
		panic(mismatch[T](c.id))
	}
	return p
}

// MustTake is the fail-fast twin of Take.
func MustTake[T, B any](c *Cell[B]) T {
	v, ok := Take[T](c)
	if !ok {
		panic(mismatch[T](c.id))
	}
	return v
}

// Free destroys the stored value through the erased callback bound at
// construction and empties the cell. A no-op after Take or a second Free.
func (c *Cell[B]) Free() {
	if c.drop != nil {
		c.drop(unsafe.Pointer(&c.buf))
	}
	c.clear()
}

// Type returns the identity of the stored value, nil when empty.
func (c *Cell[B]) Type() reflect.Type { return c.id }

// Len returns the stored value's size in bytes, 0 when empty.
func (c *Cell[B]) Len() int {
	if c.id == nil {
		return 0
	}
	return int(c.id.Size())
}

// Cap returns the cell capacity in bytes.
func (c *Cell[B]) Cap() int {
	var b B
	return int(unsafe.Sizeof(b))
}

// Empty reports whether the cell holds no value.
func (c *Cell[B]) Empty() bool { return c.id == nil }

func (c *Cell[B]) clear() {
	var zero B
	c.id = nil
	c.drop = nil
	c.buf = zero
}

// dropFuncFor binds the erased destroy callback for T, or nil when T owns
// no cleanup. Conversions of *T to an interface never allocate, so armed
// cells stay allocation-free end to end.
func dropFuncFor[T any](vt reflect.Type) func(unsafe.Pointer) {
	if _, ok := any((*T)(nil)).(Destructor); ok {
		return dropPtr[T]
	}
	if vt.Implements(destructorType) {
		// T has Destroy in its own method set but *T does not, which
		// only happens for pointer-shaped T; the deref below boxes a
		// single pointer word.
		return dropVal[T]
	}
	return nil
}

func dropPtr[T any](p unsafe.Pointer) {
	any((*T)(p)).(Destructor).Destroy()
}

func dropVal[T any](p unsafe.Pointer) {
	any(*(*T)(p)).(Destructor).Destroy()
}

func mismatch[T any](have reflect.Type) string {
	return fmt.Sprintf("anycell: cell holds %v, not %v", have, reflect.TypeFor[T]())
}

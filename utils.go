package anycell

import "unsafe"

// Word-backed buffer types for raw cells. Backing the arrays with uint64
// keeps the buffer pointer-free and at least 8-byte aligned, which covers
// every Go type's alignment on supported targets.
type (
	Buf8  [1]uint64
	Buf16 [2]uint64
	Buf24 [3]uint64
	Buf32 [4]uint64
	Buf48 [6]uint64
	Buf64 [8]uint64
)

// SizeOf returns the byte size of T.
func SizeOf[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// AlignOf returns the alignment requirement of T.
func AlignOf[T any]() int {
	var v T
	return int(unsafe.Alignof(v))
}

// CapOf returns the capacity in bytes a cell backed by B provides.
func CapOf[B any]() int {
	var b B
	return int(unsafe.Sizeof(b))
}

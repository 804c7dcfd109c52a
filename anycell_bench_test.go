package anycell

import (
	"testing"

	"github.com/rawbytedev/anycell/boxed"
)

func BenchmarkCellNew(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := MustNew[Buf8](int32(10))
		_ = c
	}
}

func BenchmarkBoxNew(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h := boxed.New(int32(10))
		_ = h
	}
}

func BenchmarkCellMut(b *testing.B) {
	c := MustNew[Buf8](int32(10))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := Mut[int32](&c)
		*p = 13
	}
}

func BenchmarkBoxMut(b *testing.B) {
	h := boxed.New(int32(10))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := boxed.Mut[int32](h)
		*p = 13
	}
}

func BenchmarkCellGet(b *testing.B) {
	c := MustNew[Buf8](int32(10))
	b.ReportAllocs()
	var sink int32
	for i := 0; i < b.N; i++ {
		v, _ := Load[int32](&c)
		sink = v
	}
	_ = sink
}

func BenchmarkBoxGet(b *testing.B) {
	h := boxed.New(int32(10))
	b.ReportAllocs()
	var sink int32
	for i := 0; i < b.N; i++ {
		v, _ := boxed.Load[int32](h)
		sink = v
	}
	_ = sink
}

func BenchmarkCellNewFreeDestructor(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := MustNew[Buf8](tracked{ID: int32(i)})
		c.Free()
	}
}

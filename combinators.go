// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"strconv"
	"sync"

	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// Option builds a Codec for *T (present/absent) out of a Codec[T]: a
// 1-byte presence tag, then the payload when present.
func Option[T any](elem Codec[T]) Codec[*T] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v *T) error {
			if v == nil {
				out.WriteBool(false)
				return nil
			}
			out.WriteBool(true)
			return elem.Write(ctx, out, *v)
		},
		func(ctx *Context, in *wire.Reader) (*T, error) {
			present, err := in.ReadBool()
			if err != nil {
				return nil, wrapEOF(err)
			}
			if !present {
				return nil, nil
			}
			v, err := elem.Read(ctx, in)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	)
}

// Slice builds a Codec for []T (spec.md's Sequence): a u32 count
// followed by that many encoded elements.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v []T) error {
			out.WriteUint32(uint32(len(v)))
			for i, item := range v {
				if err := elem.Write(ctx, out, item); err != nil {
					return WithField(err, indexLabel(uint32(i)))
				}
			}
			return nil
		},
		func(ctx *Context, in *wire.Reader) ([]T, error) {
			n, err := in.ReadUint32()
			if err != nil {
				return nil, wrapEOF(err)
			}
			result := make([]T, 0, n)
			for i := uint32(0); i < n; i++ {
				item, err := elem.Read(ctx, in)
				if err != nil {
					return nil, WithField(err, indexLabel(i))
				}
				result = append(result, item)
			}
			return result, nil
		},
	)
}

// Set builds a Codec for a set of T, represented in Go as map[T]struct{}
// since Go has no built-in set type. The writer emits elements in Go's
// (unspecified) map iteration order, matching spec.md's "the set's
// natural iteration order"; the reader tolerates duplicates by keeping
// the last occurrence, which map insertion already does for free.
func Set[T comparable](elem Codec[T]) Codec[map[T]struct{}] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v map[T]struct{}) error {
			out.WriteUint32(uint32(len(v)))
			for item := range v {
				if err := elem.Write(ctx, out, item); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx *Context, in *wire.Reader) (map[T]struct{}, error) {
			n, err := in.ReadUint32()
			if err != nil {
				return nil, wrapEOF(err)
			}
			result := make(map[T]struct{}, n)
			for i := uint32(0); i < n; i++ {
				item, err := elem.Read(ctx, in)
				if err != nil {
					return nil, WithField(err, indexLabel(i))
				}
				result[item] = struct{}{}
			}
			return result, nil
		},
	)
}

// Map builds a Codec for map[K]V: a u32 count of (K, V) pairs.
func Map[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v map[K]V) error {
			out.WriteUint32(uint32(len(v)))
			for k, val := range v {
				if err := key.Write(ctx, out, k); err != nil {
					return err
				}
				if err := value.Write(ctx, out, val); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx *Context, in *wire.Reader) (map[K]V, error) {
			n, err := in.ReadUint32()
			if err != nil {
				return nil, wrapEOF(err)
			}
			result := make(map[K]V, n)
			for i := uint32(0); i < n; i++ {
				k, err := key.Read(ctx, in)
				if err != nil {
					return nil, WithField(err, indexLabel(i))
				}
				val, err := value.Read(ctx, in)
				if err != nil {
					return nil, WithField(err, indexLabel(i))
				}
				result[k] = val
			}
			return result, nil
		},
	)
}

// FixedArray builds a Codec for a []T of a statically declared length n:
// no count on the wire, exactly n elements concatenated. Go generics
// cannot parametrize on the array length itself, so the length is a
// runtime constructor argument. Write rejects a slice whose length is not
// n with KindArrayLengthMismatch; Read always decodes exactly n elements.
func FixedArray[T any](n int, elem Codec[T]) Codec[[]T] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v []T) error {
			if len(v) != n {
				return NewError(KindArrayLengthMismatch, "expected %d elements, got %d", n, len(v))
			}
			for _, item := range v {
				if err := elem.Write(ctx, out, item); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx *Context, in *wire.Reader) ([]T, error) {
			result := make([]T, n)
			for i := 0; i < n; i++ {
				item, err := elem.Read(ctx, in)
				if err != nil {
					return nil, WithField(err, indexLabel(uint32(i)))
				}
				result[i] = item
			}
			return result, nil
		},
	)
}

// Pair is a 2-tuple, since Go has no native tuple type.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple2 builds a Codec for Pair[A, B]: elements concatenated, no count.
func Tuple2[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v Pair[A, B]) error {
			if err := a.Write(ctx, out, v.First); err != nil {
				return err
			}
			return b.Write(ctx, out, v.Second)
		},
		func(ctx *Context, in *wire.Reader) (Pair[A, B], error) {
			first, err := a.Read(ctx, in)
			if err != nil {
				return Pair[A, B]{}, err
			}
			second, err := b.Read(ctx, in)
			if err != nil {
				return Pair[A, B]{}, err
			}
			return Pair[A, B]{First: first, Second: second}, nil
		},
	)
}

// Either is a two-way sum value. EitherCodec encodes it as a 1-byte tag
// (0 = left, 1 = right), then the selected payload.
type Either[L, R any] struct {
	IsRight bool
	Left    L
	Right   R
}

// EitherCodec builds a Codec for Either[L, R].
func EitherCodec[L, R any](left Codec[L], right Codec[R]) Codec[Either[L, R]] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v Either[L, R]) error {
			if !v.IsRight {
				out.WriteByte(0)
				return left.Write(ctx, out, v.Left)
			}
			out.WriteByte(1)
			return right.Write(ctx, out, v.Right)
		},
		func(ctx *Context, in *wire.Reader) (Either[L, R], error) {
			tag, err := in.ReadByte()
			if err != nil {
				return Either[L, R]{}, wrapEOF(err)
			}
			switch tag {
			case 0:
				v, err := left.Read(ctx, in)
				return Either[L, R]{Left: v}, err
			case 1:
				v, err := right.Read(ctx, in)
				return Either[L, R]{IsRight: true, Right: v}, err
			default:
				return Either[L, R]{}, NewError(KindMalformedHeader, "either tag byte %d is neither 0 nor 1", tag)
			}
		},
	)
}

// BoundKind indicates whether a Range endpoint is inclusive or exclusive.
type BoundKind byte

const (
	BoundInclusive BoundKind = 0
	BoundExclusive BoundKind = 1
)

// Range is a generic bounded interval: a start and end value, each
// tagged inclusive or exclusive.
type Range[T any] struct {
	Start      T
	StartBound BoundKind
	End        T
	EndBound   BoundKind
}

// RangeCodec builds a Codec for Range[T]: the pair (start, end) plus two
// 1-byte inclusive/exclusive tags.
func RangeCodec[T any](elem Codec[T]) Codec[Range[T]] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v Range[T]) error {
			if err := elem.Write(ctx, out, v.Start); err != nil {
				return err
			}
			out.WriteByte(byte(v.StartBound))
			if err := elem.Write(ctx, out, v.End); err != nil {
				return err
			}
			out.WriteByte(byte(v.EndBound))
			return nil
		},
		func(ctx *Context, in *wire.Reader) (Range[T], error) {
			start, err := elem.Read(ctx, in)
			if err != nil {
				return Range[T]{}, err
			}
			startBound, err := in.ReadByte()
			if err != nil {
				return Range[T]{}, wrapEOF(err)
			}
			end, err := elem.Read(ctx, in)
			if err != nil {
				return Range[T]{}, err
			}
			endBound, err := in.ReadByte()
			if err != nil {
				return Range[T]{}, wrapEOF(err)
			}
			return Range[T]{Start: start, StartBound: BoundKind(startBound), End: end, EndBound: BoundKind(endBound)}, nil
		},
	)
}

// Newtype builds a Codec for an Outer wrapper type whose wire image is
// identical to the wrapped Inner type's: the wrapper contributes zero
// bytes of its own.
func Newtype[Outer, Inner any](unwrap func(Outer) Inner, wrap func(Inner) Outer, inner Codec[Inner]) Codec[Outer] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v Outer) error {
			return inner.Write(ctx, out, unwrap(v))
		},
		func(ctx *Context, in *wire.Reader) (Outer, error) {
			v, err := inner.Read(ctx, in)
			if err != nil {
				var zero Outer
				return zero, err
			}
			return wrap(v), nil
		},
	)
}

// Lazy defers construction of the underlying Codec until first use,
// resolving it exactly once. This is the standard way to build a Codec
// for a self-referential or mutually recursive type, since a
// package-level `var nodeCodec = ...` cannot reference itself in its own
// initializer:
//
//	var nodeCodec = Lazy(func() Codec[*Node] {
//	    return Tracked(evolve.Record(...))
//	})
func Lazy[T any](build func() Codec[T]) Codec[T] {
	var (
		once  sync.Once
		inner Codec[T]
	)
	resolve := func() Codec[T] {
		once.Do(func() { inner = build() })
		return inner
	}
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v T) error {
			return resolve().Write(ctx, out, v)
		},
		func(ctx *Context, in *wire.Reader) (T, error) {
			return resolve().Read(ctx, in)
		},
	)
}

func indexLabel(i uint32) string {
	return "[" + strconv.FormatUint(uint64(i), 10) + "]"
}

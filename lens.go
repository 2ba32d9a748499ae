package loom

// Lens is a bidirectional projection from an outer value to one of its
// parts. A lens owns nothing and holds no state; it is a pair of access
// paths.
//
// With grants read access to the inner value; callers must not mutate
// through the pointer. WithMut grants mutable access; changes are visible
// in the outer value when the callback returns.
//
// Law: reading a value and writing it back unchanged leaves the outer value
// Same as before.
type Lens[O, I any] interface {
	With(outer *O, f func(inner *I))
	WithMut(outer *O, f func(inner *I))
}

// Field builds a lens from a pointer projection, the common case of
// focusing one struct field:
//
//	nameLens := loom.Field(func(s *Person) *Str { return &s.Name })
func Field[O, I any](get func(*O) *I) Lens[O, I] {
	return fieldLens[O, I]{get}
}

type fieldLens[O, I any] struct {
	get func(*O) *I
}

func (l fieldLens[O, I]) With(outer *O, f func(*I)) {
	f(l.get(outer))
}

func (l fieldLens[O, I]) WithMut(outer *O, f func(*I)) {
	f(l.get(outer))
}

// Map builds a lens from an explicit get/put pair, for projections that
// compute the inner value rather than point at it.
func Map[O, I any](get func(O) I, put func(*O, I)) Lens[O, I] {
	return mapLens[O, I]{get, put}
}

type mapLens[O, I any] struct {
	get func(O) I
	put func(*O, I)
}

func (l mapLens[O, I]) With(outer *O, f func(*I)) {
	inner := l.get(*outer)
	f(&inner)
}

func (l mapLens[O, I]) WithMut(outer *O, f func(*I)) {
	inner := l.get(*outer)
	f(&inner)
	l.put(outer, inner)
}

// Identity returns the lens that focuses the whole value.
func Identity[T any]() Lens[T, T] {
	return fieldLens[T, T]{func(t *T) *T { return t }}
}

// Compose chains two lenses: the result focuses b's target inside a's
// target. Composition is associative.
func Compose[O, M, I any](a Lens[O, M], b Lens[M, I]) Lens[O, I] {
	return composedLens[O, M, I]{a, b}
}

type composedLens[O, M, I any] struct {
	outer Lens[O, M]
	inner Lens[M, I]
}

func (l composedLens[O, M, I]) With(outer *O, f func(*I)) {
	l.outer.With(outer, func(mid *M) {
		l.inner.With(mid, f)
	})
}

func (l composedLens[O, M, I]) WithMut(outer *O, f func(*I)) {
	l.outer.WithMut(outer, func(mid *M) {
		l.inner.WithMut(mid, f)
	})
}

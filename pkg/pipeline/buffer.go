package pipeline

// Buffer is a growable arena addressed by index. Indices returned by Append
// stay valid until Reset or Truncate; storage doubles when full and is never
// shrunk.
type Buffer[T any] struct {
	name string
	data []T
	n    int
}

// VertexBuffer, LineBuffer and TriangleBuffer are the three arenas a
// Graphics fills per shape or frame.
type (
	VertexBuffer   = Buffer[Vertex]
	LineBuffer     = Buffer[Line]
	TriangleBuffer = Buffer[Triangle]
)

// NewBuffer returns an empty buffer with the given initial capacity. The
// name only appears in log output.
func NewBuffer[T any](name string, capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{name: name, data: make([]T, capacity)}
}

// Append stores v and returns its index.
func (b *Buffer[T]) Append(v T) int {
	if b.n == len(b.data) {
		grown := make([]T, max(1, 2*len(b.data)))
		copy(grown, b.data[:b.n])
		b.data = grown
		Logger().Debug("pipeline: buffer grown", "buffer", b.name, "cap", len(grown))
	}
	b.data[b.n] = v
	b.n++
	return b.n - 1
}

// At returns a pointer to record i. The pointer is invalidated by the next
// Append.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= b.n {
		panic("pipeline: buffer index out of range")
	}
	return &b.data[i]
}

// Len returns the number of records.
func (b *Buffer[T]) Len() int { return b.n }

// Cap returns the current storage size.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Items returns the live records. The slice aliases the buffer.
func (b *Buffer[T]) Items() []T { return b.data[:b.n] }

// Truncate drops every record at index n and above.
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < b.n {
		b.n = n
	}
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer[T]) Reset() { b.n = 0 }

// Package arena implements a chunked bump allocator.
//
// An Arena hands out byte ranges sequentially from large chunks and never
// frees them individually; the owner reclaims everything at once with
// Reset. Directory listing allocates all of its buffers and copied names
// from one arena, so scanning a tree costs a handful of chunk allocations
// instead of one heap allocation per entry.
package arena

import "unsafe"

// defaultChunkSize is the size of a freshly grown chunk. Requests larger
// than this get a dedicated chunk sized to fit.
const defaultChunkSize = 64 << 10

// Arena is a chunked bump allocator. The zero value is not usable; call
// New. Not safe for concurrent use.
type Arena struct {
	chunks [][]byte
	used   int // bytes consumed in the newest chunk
}

// New creates an empty arena. The first Alloc triggers the first chunk.
func New() *Arena {
	return &Arena{}
}

// Alloc returns a size-byte slice whose first byte is aligned to align,
// which must be a power of two. The contents are unspecified (the bytes
// may be stale from a previous use of the chunk). The capacity of the
// returned slice extends to the end of the backing chunk, so bytes past
// the length stay addressable within the same allocation.
//
// The returned memory is valid until Reset; it never moves.
func (a *Arena) Alloc(size, align int) []byte {
	if align <= 0 || align&(align-1) != 0 {
		panic("arena: align must be a power of two")
	}
	if len(a.chunks) > 0 {
		chunk := a.chunks[len(a.chunks)-1]
		off := a.used + a.pad(chunk, a.used, align)
		if off+size <= len(chunk) {
			a.used = off + size
			return chunk[off : off+size]
		}
	}

	n := defaultChunkSize
	if size+align > n {
		n = size + align
	}
	chunk := make([]byte, n)
	a.chunks = append(a.chunks, chunk)
	off := a.pad(chunk, 0, align)
	a.used = off + size
	return chunk[off : off+size]
}

// pad returns how many bytes past off the next align-aligned address in
// chunk is. Alignment is of the address, not the index: chunk bases are
// only guaranteed 8-byte aligned by the runtime.
func (a *Arena) pad(chunk []byte, off, align int) int {
	addr := uintptr(unsafe.Pointer(&chunk[0])) + uintptr(off)
	return int(-addr & uintptr(align-1))
}

// Reset discards all allocations in O(chunks). The first chunk is kept
// for reuse; growth chunks are released to the garbage collector. All
// previously returned slices become invalid.
func (a *Arena) Reset() {
	if len(a.chunks) > 1 {
		a.chunks = a.chunks[:1]
	}
	a.used = 0
}

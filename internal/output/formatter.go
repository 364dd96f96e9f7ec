package output

import "github.com/dl/fastdir/internal/walker"

// Formatter renders one directory listing into bytes for output.
// buf is a reusable buffer — implementations append to it and return the
// result. Callers can pass buf[:0] to reuse the underlying array.
type Formatter interface {
	Format(buf []byte, res walker.DirResult, multiDir bool) []byte
}

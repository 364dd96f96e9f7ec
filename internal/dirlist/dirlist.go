// Package dirlist lists the children of one open directory.
//
// ListDir reads every entry of a directory file descriptor, filters out
// "." and "..", and returns the remaining names sorted. All temporary
// buffers and name bytes live in a caller-supplied arena, so repeated
// listings over a large tree reuse memory instead of churning the heap.
//
// Two implementations exist behind the same contract, selected at build
// time: a Linux fast path that parses raw getdents64 records in place,
// and a portable path built on the OS directory stream. The contract,
// invariants and failure semantics are identical for both.
package dirlist

// Name is one entry name: a view into arena-owned bytes. It contains no
// path separators and no trailing NUL, and it is valid only until the
// arena that produced it is reset.
type Name []byte

func (n Name) String() string { return string(n) }

// Directory entry type tags (d_type values from dirent.h).
const (
	DT_UNKNOWN = 0
	DT_FIFO    = 1
	DT_CHR     = 2
	DT_DIR     = 4
	DT_BLK     = 6
	DT_REG     = 8
	DT_LNK     = 10
	DT_SOCK    = 12
)

// isDots reports whether name is "." or "..".
func isDots(name []byte) bool {
	if len(name) == 1 && name[0] == '.' {
		return true
	}
	return len(name) == 2 && name[0] == '.' && name[1] == '.'
}

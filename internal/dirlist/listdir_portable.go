//go:build !linux

package dirlist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/arena"
	"github.com/dl/fastdir/internal/strcoll"
)

// readDirBatch is how many entries are pulled from the directory stream
// per ReadDir call.
const readDirBatch = 64

// ListDir fills entries with the names of dirfd's children, excluding
// "." and "..", sorted byte-wise when caseSensitive and case-folded
// otherwise. Every name is copied into a per-entry arena allocation and
// stays valid until a is reset. dirfd is borrowed and is not closed; the
// duplicate used for reading shares its file offset, so the read
// position is consumed.
//
// On error entries is reset to empty; no partial listing is exposed.
func ListDir(dirfd int, a *arena.Arena, entries *[]Name, caseSensitive bool) error {
	*entries = (*entries)[:0]

	// Read through a duplicate so closing the stream never closes the
	// caller's descriptor.
	dupfd, err := unix.Dup(dirfd)
	if err != nil {
		return fmt.Errorf("dirlist: dup: %w", err)
	}
	f := os.NewFile(uintptr(dupfd), "") // takes ownership of dupfd
	defer func() {
		// Closing a healthy descriptor cannot fail; if it does the
		// process state is corrupted and continuing would be worse.
		if cerr := f.Close(); cerr != nil {
			panic("dirlist: close duplicated directory: " + cerr.Error())
		}
	}()

	for {
		batch, err := f.ReadDir(readDirBatch)
		for _, ent := range batch {
			name := ent.Name()
			if len(name) == 0 || isDots([]byte(name)) {
				continue
			}
			// Layout in the arena: [type tag][name bytes][NUL]. The tag
			// sits immediately before the name and is reachable through
			// EntryType; the returned view is the name alone.
			p := a.Alloc(len(name)+2, 1)
			p[0] = direntType(ent.Type())
			copy(p[1:], name)
			p[len(name)+1] = 0
			*entries = append(*entries, Name(p[1:len(name)+1]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			*entries = (*entries)[:0]
			return fmt.Errorf("dirlist: readdir: %w", err)
		}
	}

	sortEntries(*entries, caseSensitive)
	return nil
}

// EntryType returns the d_type tag stored in the byte immediately before
// n. Only names produced by this ListDir carry a tag; the Linux fast
// path does not retain one.
func EntryType(n Name) uint8 {
	return *(*uint8)(unsafe.Add(unsafe.Pointer(&n[0]), -1))
}

func sortEntries(entries []Name, caseSensitive bool) {
	slices.SortFunc(entries, func(a, b Name) int {
		if caseSensitive {
			return strcoll.Compare(a, b)
		}
		return strcoll.CompareFold(a, b)
	})
}

// direntType converts an fs.FileMode type to the matching d_type tag.
func direntType(m fs.FileMode) uint8 {
	switch m & fs.ModeType {
	case 0:
		return DT_REG
	case fs.ModeDir:
		return DT_DIR
	case fs.ModeSymlink:
		return DT_LNK
	case fs.ModeNamedPipe:
		return DT_FIFO
	case fs.ModeSocket:
		return DT_SOCK
	case fs.ModeDevice | fs.ModeCharDevice:
		return DT_CHR
	case fs.ModeDevice:
		return DT_BLK
	default:
		return DT_UNKNOWN
	}
}

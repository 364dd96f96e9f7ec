//go:build linux

package dirlist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/arena"
	"github.com/dl/fastdir/internal/strcoll"
)

// linux_dirent64 layout (linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
const (
	direntReclenOffset = 16
	direntNameOffset   = 19
	direntAlign        = 8

	// Each getdents64 call fills a fresh 8 KiB arena block but only asks
	// the kernel for blockSize-blockMargin bytes. Records are 8-aligned
	// and a name starts 19 bytes into its record, so the last possible
	// name offset is (blockSize-blockMargin)-24+19 and name+5+256 lands
	// exactly at blockSize. That slack is what lets sortEntries compare
	// a fixed 256-byte window without ever leaving the block.
	blockSize   = 8 << 10
	blockMargin = 256
)

var errInvalidDirent = errors.New("dirlist: invalid dirent record")

// ListDir fills entries with the names of dirfd's children, excluding
// "." and "..", sorted byte-wise when caseSensitive and case-folded
// otherwise. Every name points into memory owned by a and stays valid
// until a is reset. dirfd is borrowed: it is not closed, but its read
// position is consumed.
//
// On error entries is reset to empty; no partial listing is exposed.
func ListDir(dirfd int, a *arena.Arena, entries *[]Name, caseSensitive bool) error {
	*entries = (*entries)[:0]

	for {
		buf := a.Alloc(blockSize, direntAlign)
		var n int
		var err error
		for {
			n, err = unix.Getdents(dirfd, buf[:blockSize-blockMargin])
			if err != unix.EINTR {
				break
			}
		}
		if err != nil {
			*entries = (*entries)[:0]
			return fmt.Errorf("dirlist: getdents: %w", err)
		}
		if n == 0 {
			break
		}

		// A short but non-zero return does not mean end of directory:
		// getdents64 sometimes hands back a partial batch even when the
		// rest would fit. Only a literal zero terminates the loop.
		for pos := 0; pos < n; {
			if n-pos < direntNameOffset {
				*entries = (*entries)[:0]
				return errInvalidDirent
			}
			rec := buf[pos:n]
			reclen := int(binary.NativeEndian.Uint16(rec[direntReclenOffset:]))
			if reclen < direntNameOffset+1 || reclen > len(rec) {
				*entries = (*entries)[:0]
				return errInvalidDirent
			}
			name := rec[direntNameOffset:reclen]
			if i := bytes.IndexByte(name, 0); i >= 0 {
				name = name[:i]
			}
			if len(name) > 0 && !isDots(name) {
				// The name stays where the kernel wrote it; the block is
				// arena-owned and outlives this call.
				*entries = append(*entries, Name(name))
			}
			pos += reclen
		}
	}

	sortEntries(*entries, caseSensitive)
	return nil
}

// sortEntries orders names ascending in place.
//
// The case-sensitive comparator exploits the block layout above: every
// name has at least 5+256 readable bytes behind its first byte, so the
// leading 8 bytes can be compared as one machine word. The prefixes are
// byte-swapped in place before the sort so a native little-endian load
// yields memory order, and swapped back afterwards to restore the
// NUL-terminated names. On big-endian hosts the swap is a no-op.
func sortEntries(entries []Name, caseSensitive bool) {
	if !caseSensitive {
		slices.SortFunc(entries, func(a, b Name) int {
			return strcoll.CompareFold(a, b)
		})
		return
	}

	swapPrefixes(entries)
	slices.SortFunc(entries, func(a, b Name) int {
		x, y := read64(a), read64(b)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
		// Equal first words: fall back to the raw bytes behind them.
		// The +5 offset re-reads three swapped-but-equal bytes, which
		// cannot change the result; the 256-byte window is covered by
		// the block margin.
		return bytes.Compare(tailWindow(a), tailWindow(b))
	})
	swapPrefixes(entries)
}

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201

func swapPrefixes(entries []Name) {
	if !hostLittleEndian {
		return
	}
	for _, e := range entries {
		p := prefix8(e)
		binary.NativeEndian.PutUint64(p, bits.ReverseBytes64(binary.NativeEndian.Uint64(p)))
	}
}

func read64(n Name) uint64 {
	return binary.NativeEndian.Uint64(prefix8(n))
}

// prefix8 and tailWindow reach past len(n) into the slack the block
// layout guarantees within the same arena chunk.
func prefix8(n Name) []byte {
	return unsafe.Slice(&n[0], 8)
}

func tailWindow(n Name) []byte {
	return unsafe.Slice(&n[0], 5+256)[5:]
}

//go:build !linux

package walker

import "github.com/dl/fastdir/internal/dirlist"

// classify resolves the kind of one listed entry from the d_type tag the
// portable listing path stores next to each name. Filesystems that do
// not fill d_type report DT_UNKNOWN; those entries fall back to fstatat.
func classify(dirfd int, name dirlist.Name) Kind {
	switch dirlist.EntryType(name) {
	case dirlist.DT_DIR:
		return KindDir
	case dirlist.DT_REG:
		return KindRegular
	case dirlist.DT_LNK:
		return KindSymlink
	case dirlist.DT_UNKNOWN:
		return statKind(dirfd, name.String())
	}
	return KindOther
}

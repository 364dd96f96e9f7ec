//go:build linux

package walker

import "github.com/dl/fastdir/internal/dirlist"

// classify resolves the kind of one listed entry. The fast listing path
// discards d_type after its dot filter, so kinds come from fstatat
// against the still-open directory fd.
func classify(dirfd int, name dirlist.Name) Kind {
	return statKind(dirfd, name.String())
}

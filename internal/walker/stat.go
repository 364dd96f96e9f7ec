package walker

import "golang.org/x/sys/unix"

// statKind classifies name via fstatat relative to dirfd.
// AT_SYMLINK_NOFOLLOW keeps symlinks visible as symlinks. Entries that
// cannot be stat'd (raced deletions, permissions) come back as KindOther
// rather than failing the listing.
func statKind(dirfd int, name string) Kind {
	var st unix.Stat_t
	for {
		err := unix.Fstatat(dirfd, name, &st, unix.AT_SYMLINK_NOFOLLOW)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return KindOther
		}
		break
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return KindDir
	case unix.S_IFREG:
		return KindRegular
	case unix.S_IFLNK:
		return KindSymlink
	}
	return KindOther
}

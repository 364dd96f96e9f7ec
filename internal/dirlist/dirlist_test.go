package dirlist

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/arena"
)

// openDir opens path as a directory fd and registers its close.
func openDir(t *testing.T, path string) int {
	t.Helper()
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { unix.Close(fd) })
	return fd
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// list runs ListDir on a fresh fd and arena and returns the names as strings.
func list(t *testing.T, dir string, caseSensitive bool) []string {
	t.Helper()
	fd := openDir(t, dir)
	a := arena.New()
	var entries []Name
	if err := ListDir(fd, a, &entries, caseSensitive); err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.String()
	}
	return names
}

func TestListDirMatchesIndependentEnumeration(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.txt", "c.txt", "a.txt", ".hidden")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := list(t, dir, true)

	// Independent enumeration via the standard library.
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]string, len(ents))
	for i, e := range ents {
		want[i] = e.Name()
	}
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("ListDir = %v, want %v", got, want)
	}
	for _, name := range got {
		if name == "." || name == ".." {
			t.Errorf("pseudo-entry %q in output", name)
		}
	}
}

func TestListDirEmptyDirectory(t *testing.T) {
	got := list(t, t.TempDir(), true)
	if len(got) != 0 {
		t.Errorf("empty directory listed as %v, want no entries", got)
	}
}

func TestListDirCaseSensitiveOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.txt", "A.txt", "a.txt")

	got := list(t, dir, true)
	want := []string{"A.txt", "a.txt", "b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListDirCaseInsensitiveOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.txt", "A.txt", "a.txt", "C.txt")

	got := list(t, dir, false)
	// Fold-equal names tie-break byte-wise: "A.txt" before "a.txt".
	want := []string{"A.txt", "a.txt", "b.txt", "C.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListDirSharedPrefixes(t *testing.T) {
	// Names sharing a long common prefix force the case-sensitive sort
	// past its first-word comparison.
	dir := t.TempDir()
	names := []string{
		"shared_prefix_aaa",
		"shared_prefix_aab",
		"shared_prefix_aa",
		"shared_prefix",
		"shared_prefiy",
	}
	touch(t, dir, names...)

	got := list(t, dir, true)
	want := append([]string(nil), names...)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListDirLongNames(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 200)
	names := []string{long + "b", long + "a", strings.Repeat("y", 255)}
	touch(t, dir, names...)

	got := list(t, dir, true)
	want := append([]string(nil), names...)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListDirManyEntries(t *testing.T) {
	// Enough entries that the listing needs several kernel reads: 800
	// names of ~64 bytes is ~70 KiB of records against an 8 KiB block.
	dir := t.TempDir()
	want := make([]string, 800)
	for i := range want {
		want[i] = fmt.Sprintf("%s_%04d", strings.Repeat("n", 56), i)
	}
	touch(t, dir, want...)

	got := list(t, dir, true)
	if len(got) != len(want) {
		t.Fatalf("listed %d entries, want %d", len(got), len(want))
	}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Error("listing does not match created entries")
	}
	for i := 1; i < len(got); i++ {
		if got[i] == got[i-1] {
			t.Fatalf("duplicate entry %q", got[i])
		}
	}
}

func TestListDirIdempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "one", "two", "three", "Four", "FIVE")

	first := list(t, dir, true)
	second := list(t, dir, true)
	if !slices.Equal(first, second) {
		t.Errorf("repeated listing differs: %v vs %v", first, second)
	}
}

func TestListDirBadDescriptor(t *testing.T) {
	a := arena.New()
	entries := []Name{Name("stale")}
	err := ListDir(-1, a, &entries, true)
	if err == nil {
		t.Fatal("ListDir on invalid fd succeeded")
	}
	if len(entries) != 0 {
		t.Errorf("entries not cleared on failure: %v", entries)
	}
}

func TestListDirFailureOnNonDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file")
	fd, err := unix.Open(filepath.Join(dir, "file"), unix.O_RDONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fd)

	a := arena.New()
	entries := []Name{Name("stale")}
	if err := ListDir(fd, a, &entries, true); err == nil {
		t.Fatal("ListDir on a regular file succeeded")
	}
	if len(entries) != 0 {
		t.Errorf("entries not cleared on failure: %v", entries)
	}
}

func TestListDirBorrowedDescriptorStaysOpen(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a")
	fd := openDir(t, dir)

	a := arena.New()
	var entries []Name
	if err := ListDir(fd, a, &entries, true); err != nil {
		t.Fatalf("ListDir: %v", err)
	}

	// The fd must still be usable afterwards.
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		t.Errorf("fstat after ListDir: %v", err)
	}
}

func TestListDirArenaReuse(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "alpha", "beta", "gamma")

	a := arena.New()
	var entries []Name
	for i := 0; i < 3; i++ {
		fd := openDir(t, dir)
		a.Reset()
		if err := ListDir(fd, a, &entries, true); err != nil {
			t.Fatalf("ListDir: %v", err)
		}
		got := make([]string, len(entries))
		for i, e := range entries {
			got[i] = e.String()
		}
		if want := []string{"alpha", "beta", "gamma"}; !slices.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

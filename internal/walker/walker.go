// Package walker drives the directory-listing core over a tree. It owns
// the traversal orchestration the core deliberately leaves to callers:
// opening directory descriptors, recycling one arena per worker, layering
// .gitignore rules, and deciding what recurses and what gets reported.
package walker

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/arena"
	"github.com/dl/fastdir/internal/dirlist"
	"github.com/dl/fastdir/internal/filter"
)

// Kind classifies a listed entry.
type Kind uint8

const (
	KindOther Kind = iota
	KindRegular
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	}
	return "other"
}

// Entry is one reported child of a directory.
type Entry struct {
	Name string
	Kind Kind
}

// DirResult is the listing of one directory. Entries are in the sort
// order the core produced. Seq numbers results in discovery order so a
// consumer can print deterministically despite parallel workers.
type DirResult struct {
	Path    string
	Seq     int
	Entries []Entry
	Err     error
}

// Options configures a walk.
type Options struct {
	Recursive       bool
	Hidden          bool          // include hidden entries
	NoIgnore        bool          // skip .gitignore processing
	CaseInsensitive bool          // fold case when sorting listings
	Workers         int           // 0 means NumCPU
	Filter          filter.Filter // nil means report everything
}

// Walk lists the given directories and sends one DirResult per directory
// on the returned channel. In recursive mode subdirectories are
// discovered breadth-first by a pool of parallel workers; every worker
// keeps a private arena that is reset per directory, so steady-state
// traversal does not allocate per entry. The channel is closed when the
// walk completes.
func Walk(roots []string, opts Options) <-chan DirResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pw := &parallelWalker{
		resultCh:  make(chan DirResult, workers*2),
		recursive: opts.Recursive,
		hidden:    opts.Hidden,
		noIgnore:  opts.NoIgnore,
		fold:      opts.CaseInsensitive,
		filter:    opts.Filter,
	}
	pw.cond = sync.NewCond(&pw.mu)

	if len(roots) == 0 {
		close(pw.resultCh)
		return pw.resultCh
	}

	for _, root := range roots {
		var layers []ignoreLayer
		if !opts.NoIgnore {
			layers = []ignoreLayer{loadIgnoreLayer(root)}
		}
		pw.enqueue(walkItem{path: root, ignores: layers})
	}

	go func() {
		defer close(pw.resultCh)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				pw.worker()
			}()
		}
		wg.Wait()
	}()

	return pw.resultCh
}

// walkItem is a directory awaiting listing.
type walkItem struct {
	path    string
	seq     int
	ignores []ignoreLayer // snapshot of ancestor ignore layers (nil if --no-ignore)
}

// parallelWalker coordinates concurrent BFS traversal.
type parallelWalker struct {
	resultCh  chan DirResult
	recursive bool
	hidden    bool
	noIgnore  bool
	fold      bool
	filter    filter.Filter

	mu      sync.Mutex
	queue   []walkItem
	pending int        // dirs enqueued but not yet fully processed
	nextSeq int        // discovery-order sequence counter
	cond    *sync.Cond // signaled when items are enqueued or work is done
	done    bool
}

// enqueue adds a directory to the work queue, assigning its sequence number.
func (pw *parallelWalker) enqueue(item walkItem) {
	pw.mu.Lock()
	pw.nextSeq++
	item.seq = pw.nextSeq
	pw.queue = append(pw.queue, item)
	pw.pending++
	pw.mu.Unlock()
	pw.cond.Signal()
}

// dequeue retrieves a work item, blocking while the queue is temporarily
// empty. Returns false when all work is complete.
func (pw *parallelWalker) dequeue() (walkItem, bool) {
	pw.mu.Lock()
	for len(pw.queue) == 0 && !pw.done {
		pw.cond.Wait()
	}
	if pw.done && len(pw.queue) == 0 {
		pw.mu.Unlock()
		return walkItem{}, false
	}
	item := pw.queue[0]
	pw.queue = pw.queue[1:]
	pw.mu.Unlock()
	return item, true
}

// finish marks a directory as fully processed.
func (pw *parallelWalker) finish() {
	pw.mu.Lock()
	pw.pending--
	if pw.pending == 0 && len(pw.queue) == 0 {
		pw.done = true
		pw.cond.Broadcast()
	}
	pw.mu.Unlock()
}

// worker processes directories until the queue drains for good. The
// arena and name slice live for the worker's lifetime and are recycled
// across directories.
func (pw *parallelWalker) worker() {
	a := arena.New()
	var names []dirlist.Name
	for {
		item, ok := pw.dequeue()
		if !ok {
			return
		}
		names = pw.processDir(item, a, names)
		pw.finish()
	}
}

// processDir lists one directory through the core and dispatches its
// entries. The directory fd is closed before subdirectories are
// enqueued, so open descriptors stay bounded by the worker count.
func (pw *parallelWalker) processDir(item walkItem, a *arena.Arena, names []dirlist.Name) []dirlist.Name {
	res := DirResult{Path: item.path, Seq: item.seq}

	fd, err := unix.Open(item.path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		res.Err = &WalkError{Path: item.path, Err: err}
		pw.resultCh <- res
		return names
	}

	a.Reset()
	if err := dirlist.ListDir(fd, a, &names, !pw.fold); err != nil {
		unix.Close(fd)
		res.Err = &WalkError{Path: item.path, Err: err}
		pw.resultCh <- res
		return names
	}

	var subdirs []walkItem
	for _, name := range names {
		kind := classify(fd, name)
		nameStr := name.String()
		isDir := kind == KindDir

		if isDir {
			if skipDir(nameStr, pw.hidden) {
				continue
			}
		} else if !pw.hidden && nameStr[0] == '.' {
			continue
		}

		fullPath := joinPath(item.path, nameStr)
		if item.ignores != nil && isIgnoredByLayers(item.ignores, fullPath, isDir) {
			continue
		}

		// Recursion does not follow symlinked directories.
		if isDir && pw.recursive {
			var childIgnores []ignoreLayer
			if !pw.noIgnore {
				childIgnores = make([]ignoreLayer, len(item.ignores)+1)
				copy(childIgnores, item.ignores)
				childIgnores[len(item.ignores)] = loadIgnoreLayer(fullPath)
			}
			subdirs = append(subdirs, walkItem{path: fullPath, ignores: childIgnores})
		}

		if pw.filter != nil && !pw.filter.Match(name) {
			continue
		}
		res.Entries = append(res.Entries, Entry{Name: nameStr, Kind: kind})
	}

	unix.Close(fd)
	pw.resultCh <- res

	for _, sub := range subdirs {
		pw.enqueue(sub)
	}
	return names
}

// joinPath concatenates a directory and entry name with a single separator.
// Avoids filepath.Join overhead (no Clean, no validation) since we control
// the inputs: dirPath is always a valid directory path, name is a plain
// filename. Uses a single allocation via make+copy.
func joinPath(dirPath, name string) string {
	needsSep := len(dirPath) == 0 || dirPath[len(dirPath)-1] != '/'
	n := len(dirPath) + len(name)
	if needsSep {
		n++
	}
	buf := make([]byte, n)
	copy(buf, dirPath)
	i := len(dirPath)
	if needsSep {
		buf[i] = '/'
		i++
	}
	copy(buf[i:], name)
	return unsafe.String(&buf[0], len(buf))
}

// skipDir returns true for directories that should not be listed or
// entered. VCS directories (.git, .svn, .hg) are always skipped; other
// hidden directories are skipped unless hidden is true.
func skipDir(name string, hidden bool) bool {
	switch name {
	case ".git", ".svn", ".hg":
		return true
	}
	return !hidden && len(name) > 0 && name[0] == '.'
}

// WalkError records an error listing one directory.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return "walk " + e.Path + ": " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

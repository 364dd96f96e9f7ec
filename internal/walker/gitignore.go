package walker

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreLayer is the compiled .gitignore of one ancestor directory. The
// walker snapshots the layer slice when it enqueues a subdirectory; the
// underlying *GitIgnore parsers are immutable and shared safely across
// goroutines.
type ignoreLayer struct {
	dir    string
	parser *ignore.GitIgnore
}

// loadIgnoreLayer loads and compiles a .gitignore from the given
// directory. Returns a layer with nil parser if no .gitignore exists or
// it fails to parse; the nil layer keeps ancestor depth intact.
func loadIgnoreLayer(dir string) ignoreLayer {
	var path string
	if len(dir) > 0 && dir[len(dir)-1] == '/' {
		path = dir + ".gitignore"
	} else {
		path = dir + "/.gitignore"
	}
	parser, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return ignoreLayer{dir: dir, parser: nil}
	}
	return ignoreLayer{dir: dir, parser: parser}
}

// isIgnoredByLayers checks fullPath against every ancestor layer.
// Directories are checked with a trailing slash so "build/" style
// patterns only match directories.
func isIgnoredByLayers(layers []ignoreLayer, fullPath string, isDir bool) bool {
	for _, layer := range layers {
		if layer.parser == nil {
			continue
		}
		rel, err := filepath.Rel(layer.dir, fullPath)
		if err != nil {
			continue
		}
		checkPath := rel
		if isDir {
			checkPath = rel + "/"
		}
		if layer.parser.MatchesPath(checkPath) {
			return true
		}
	}
	return false
}

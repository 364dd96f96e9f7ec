// Package filter matches entry names against a user-supplied pattern.
// Names are short, so matching stays simple: a literal substring check
// by default, PCRE when requested.
package filter

import (
	"bytes"
	"fmt"

	"go.elara.ws/pcre"
)

// Filter decides whether an entry name should be reported.
type Filter interface {
	Match(name []byte) bool
}

// New creates the appropriate Filter for pattern. An empty pattern
// matches everything. With usePCRE the pattern is compiled as a PCRE2
// regex (go.elara.ws/pcre); otherwise it is a literal substring.
// ignoreCase folds ASCII case either way.
func New(pattern string, usePCRE, ignoreCase bool) (Filter, error) {
	if pattern == "" {
		return matchAll{}, nil
	}

	if usePCRE {
		var opts pcre.CompileOption
		if ignoreCase {
			opts |= pcre.Caseless
		}
		re, err := pcre.CompileOpts(pattern, opts)
		if err != nil {
			return nil, fmt.Errorf("filter: compile %q: %w", pattern, err)
		}
		return &pcreFilter{re: re}, nil
	}

	lit := []byte(pattern)
	if ignoreCase {
		lit = bytes.ToLower(lit)
	}
	return &literalFilter{pattern: lit, fold: ignoreCase}, nil
}

type matchAll struct{}

func (matchAll) Match([]byte) bool { return true }

// literalFilter reports names containing the pattern as a substring.
type literalFilter struct {
	pattern []byte
	fold    bool
}

func (f *literalFilter) Match(name []byte) bool {
	if !f.fold {
		return bytes.Contains(name, f.pattern)
	}
	return containsFold(name, f.pattern)
}

// containsFold is bytes.Contains with ASCII case folding; pattern must
// already be lower case.
func containsFold(name, pattern []byte) bool {
	if len(pattern) > len(name) {
		return false
	}
	for i := 0; i+len(pattern) <= len(name); i++ {
		if equalFoldAt(name[i:], pattern) {
			return true
		}
	}
	return false
}

func equalFoldAt(name, pattern []byte) bool {
	for i, p := range pattern {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != p {
			return false
		}
	}
	return true
}

// pcreFilter matches names against a PCRE2 regex.
type pcreFilter struct {
	re *pcre.Regexp
}

func (f *pcreFilter) Match(name []byte) bool {
	return f.re.Match(name)
}

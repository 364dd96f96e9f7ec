package output

import "github.com/dl/fastdir/internal/walker"

// TextFormatter formats listings as human-readable text, one name per
// line. In multi-directory output each listing is preceded by a
// "dir:" header line, the way ls prints multiple arguments.
type TextFormatter struct {
	styles    Styles
	useColor  bool
	showKinds bool // append a / to directories and @ to symlinks
	first     bool
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles, useColor, showKinds bool) *TextFormatter {
	return &TextFormatter{
		styles:    styles,
		useColor:  useColor,
		showKinds: showKinds,
		first:     true,
	}
}

func (f *TextFormatter) Format(buf []byte, res walker.DirResult, multiDir bool) []byte {
	if multiDir {
		if !f.first {
			buf = append(buf, '\n')
		}
		if f.useColor {
			buf = append(buf, f.styles.Header.Render(res.Path+":")...)
		} else {
			buf = append(buf, res.Path...)
			buf = append(buf, ':')
		}
		buf = append(buf, '\n')
	}
	f.first = false

	for _, e := range res.Entries {
		if f.useColor {
			buf = append(buf, f.styles.forKind(e.Kind).Render(e.Name)...)
		} else {
			buf = append(buf, e.Name...)
		}
		if f.showKinds {
			switch e.Kind {
			case walker.KindDir:
				buf = append(buf, '/')
			case walker.KindSymlink:
				buf = append(buf, '@')
			}
		}
		buf = append(buf, '\n')
	}
	return buf
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)

package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/walker"
)

// Styles holds the lipgloss styles for listing output.
type Styles struct {
	Header  lipgloss.Style // directory header in multi-directory output
	Dir     lipgloss.Style
	Symlink lipgloss.Style
	File    lipgloss.Style
	Other   lipgloss.Style
}

// NewStyles creates the default color styles.
func NewStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),            // magenta
		Dir:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true), // bold blue
		Symlink: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),            // cyan
		File:    lipgloss.NewStyle(),
		Other:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Dir:     lipgloss.NewStyle(),
		Symlink: lipgloss.NewStyle(),
		File:    lipgloss.NewStyle(),
		Other:   lipgloss.NewStyle(),
	}
}

// forKind returns the style for one entry kind.
func (s Styles) forKind(k walker.Kind) lipgloss.Style {
	switch k {
	case walker.KindDir:
		return s.Dir
	case walker.KindSymlink:
		return s.Symlink
	case walker.KindRegular:
		return s.File
	}
	return s.Other
}

// IsTerminal checks if the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}

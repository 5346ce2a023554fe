package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Level colors, 256-color palette.
const (
	colorGray   = "245"
	colorGreen  = "154"
	colorYellow = "220"
	colorRed    = "196"
	colorPurple = "201"
)

// levelStyles renders level labels for one output.
type levelStyles struct {
	styles map[Level]lipgloss.Style
}

func newLevelStyles(w io.Writer) *levelStyles {
	r := lipgloss.NewRenderer(w)
	return &levelStyles{styles: map[Level]lipgloss.Style{
		LevelDebug:    r.NewStyle().Foreground(lipgloss.Color(colorGray)),
		LevelInfo:     r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		LevelWarning:  r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		LevelError:    r.NewStyle().Foreground(lipgloss.Color(colorRed)),
		LevelCritical: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPurple)),
	}}
}

// label returns the styled label for l, or the plain label for unnamed levels.
func (s *levelStyles) label(l Level) string {
	if st, ok := s.styles[l]; ok {
		return st.Render(l.String())
	}
	return l.String()
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

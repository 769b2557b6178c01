package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the goalstack ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).Profile
	// Indigo to rose gradient, one colour per line.
	lines := []struct{ text, color string }{
		{"                   _     _             _    ", "#818cf8"},
		{"   __ _  ___   __ _| |___| |_ __ _  ___| | __", "#a78bfa"},
		{"  / _` |/ _ \\ / _` | / __| __/ _` |/ __| |/ /", "#c084fc"},
		{" | (_| | (_) | (_| | \\__ \\ || (_| | (__|   < ", "#e879f9"},
		{"  \\__, |\\___/ \\__,_|_|___/\\__\\__,_|\\___|_|\\_\\", "#f472b6"},
		{"  |___/                                      ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Palette colours step output when writing to a terminal.
type Palette struct {
	profile termenv.Profile
}

// NewPalette detects the colour profile of w. Writers that are not a
// terminal get the Ascii profile and plain text.
func NewPalette(w io.Writer) Palette {
	return Palette{profile: termenv.NewOutput(w).Profile}
}

// PlainPalette never emits escape sequences.
func PlainPalette() Palette {
	return Palette{profile: termenv.Ascii}
}

// Operator highlights an operator name.
func (p Palette) Operator(s string) string {
	return p.profile.String(s).Foreground(p.profile.Color("#f472b6")).Bold().String()
}

// Rule dims a rule label.
func (p Palette) Rule(s string) string {
	return p.profile.String(s).Foreground(p.profile.Color("#818cf8")).String()
}

// Faint renders secondary text.
func (p Palette) Faint(s string) string {
	return p.profile.String(s).Faint().String()
}

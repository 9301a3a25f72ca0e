package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Reattach.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct{ text, color string }{
		{`  ____                 _   _             _     `, "#818cf8"},
		{` |  _ \ ___  __ _| |_| |_ __ _  ___| |__  `, "#a78bfa"},
		{` | |_) / _ \/ _' | __| __/ _' |/ __| '_ \ `, "#c084fc"},
		{` |  _ <  __/ (_| | |_| || (_| | (__| | | |`, "#e879f9"},
		{` |_| \_\___|\__,_|\__|\__\__,_|\___|_| |_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

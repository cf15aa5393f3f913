package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"        _      _             ",
	" _ __  (_) ___| | _____ _ __ ",
	"| '_ \\ | |/ __| |/ / _ \\ '__|",
	"| |_) || | (__|   <  __/ |   ",
	"| .__/ |_|\\___|_|\\_\\___|_|   ",
	"|_|                          ",
}

// Indigo to rose, one shade per line.
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes the picker banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}

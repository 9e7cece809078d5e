package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _____ _                           ",
	" |  ___(_) __ _ ___ _ __   ___  ___ ",
	" | |_  | |/ _` / __| '_ \\ / _ \\/ __|",
	" |  _| | | (_| \\__ \\ |_) |  __/ (__ ",
	" |_|   |_|\\__, |___/ .__/ \\___|\\___|",
	"          |___/    |_|              ",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes the figspec banner and version to w.
// Colors are dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	color := IsTerminal(w)
	profile := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		if !color {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, termenv.String(line).Foreground(profile.Color(bannerColors[i])))
	}
	fmt.Fprintf(w, "  v%s\n\n", version)
}

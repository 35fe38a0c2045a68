package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	Lost, Found                                   string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymLost, SymFound, SymActive, SymDone         string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			Lost: "\033[91m", Found: "\033[92m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymLost: "◇", SymFound: "◆", SymActive: "•", SymDone: "✔",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymLost: "?", SymFound: "!", SymActive: "-", SymDone: "x",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			Lost: fgRed, Found: fgCyan,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymLost: "○", SymFound: "●", SymActive: "•", SymDone: "✔",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// ----------------------------------------------------------------------------
// FILE: render/render.go
// ----------------------------------------------------------------------------
// PACKAGE: render
// PURPOSE: REPL debug-box rendering (SPEC_FULL.md §4/§6), grounded on
//          the teacher repl's printTokens/printAST boxed-output style.
//          Box borders are padded by display width rather than byte or
//          rune count, using golang.org/x/text/width to fold East-Asian
//          wide/fullwidth runes to two columns — the teacher's own
//          strings.Repeat(" ", len(line)) padding breaks as soon as a
//          source string literal contains a wide character.
// ----------------------------------------------------------------------------

package render

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth returns s's rendered column width, counting East-Asian
// wide and fullwidth runes as two columns and everything else as one.
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// Box renders title over a bordered box containing lines, padded to the
// widest line's display width (spec.md §6.2's `.debug` dot-command
// output; SPEC_FULL.md extends it to also show the render package's
// header/token/AST dumps through this one shared renderer).
func Box(title string, lines []string) string {
	// One column wider than the title, so the top border's "┌─ title "
	// lead-in lines up with the "│ " ... " │" body rows.
	maxWidth := DisplayWidth(title) + 1
	for _, l := range lines {
		if w := DisplayWidth(l); w > maxWidth {
			maxWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString("┌─ ")
	sb.WriteString(title)
	sb.WriteString(" ")
	sb.WriteString(strings.Repeat("─", maxWidth-DisplayWidth(title)-1))
	sb.WriteString("┐\n")

	for _, l := range lines {
		sb.WriteString("│ ")
		sb.WriteString(l)
		sb.WriteString(strings.Repeat(" ", max(0, maxWidth-DisplayWidth(l))))
		sb.WriteString(" │\n")
	}

	sb.WriteString("└")
	sb.WriteString(strings.Repeat("─", maxWidth+2))
	sb.WriteString("┘\n")
	return sb.String()
}

// Package tui provides the Bubble Tea learning flow.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps each paragraph of text to width display columns. Lines break
// between words; a word wider than a line is split.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapParagraph(p, width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapParagraph(p string, width int) string {
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	for _, word := range strings.Fields(p) {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if w > width {
			chunks := splitAtWidth(word, width)
			lines = append(lines, chunks[:len(chunks)-1]...)
			word = chunks[len(chunks)-1]
			w = runewidth.StringWidth(word)
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}

// splitAtWidth cuts word into chunks of at most width columns. A single rune
// wider than width gets a chunk of its own.
func splitAtWidth(word string, width int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curW   int
	)
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if curW > 0 && curW+rw > width {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteRune(r)
		curW += rw
	}
	return append(chunks, cur.String())
}

package nlp

import (
	"strings"
	"unicode/utf8"
)

// SplitText packs whole words into chunks of at most max characters. A single
// word longer than max becomes its own chunk.
func SplitText(text string, max int) []string {
	var chunks []string
	var sb strings.Builder
	n := 0

	for _, word := range strings.Fields(text) {
		wl := utf8.RuneCountInString(word)
		if n > 0 && n+1+wl > max {
			chunks = append(chunks, sb.String())
			sb.Reset()
			n = 0
		}
		if n > 0 {
			sb.WriteByte(' ')
			n++
		}
		sb.WriteString(word)
		n += wl
	}

	if n > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

package layout

import "strings"

// Wrap breaks text into lines no wider than width. Explicit newlines are kept
// and words wider than a whole line are split by rune.
func Wrap(m Measurer, text string, st Style, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := ""
		for _, w := range words {
			for _, piece := range splitLong(m, w, st, width) {
				candidate := piece
				if line != "" {
					candidate = line + " " + piece
				}
				if line != "" && m.TextWidth(candidate, st) > width {
					out = append(out, line)
					line = piece
					continue
				}
				line = candidate
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitLong(m Measurer, word string, st Style, width float64) []string {
	if m.TextWidth(word, st) <= width {
		return []string{word}
	}
	var parts []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && m.TextWidth(string(next), st) > width {
			parts = append(parts, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

// Truncate shortens text to fit width, ending it with an ellipsis.
func Truncate(m Measurer, text string, st Style, width float64) string {
	if m.TextWidth(text, st) <= width {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && m.TextWidth(string(r)+"...", st) > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

package scoretab

// Score tables are hand-edited, so the loader tolerates json5 habits:
// // and /* */ comments plus trailing commas before ] or }. The text
// is cleaned in two passes, comments first so a comment between a
// trailing comma and its bracket does not hide it. Both passes leave
// quoted strings untouched.

func stripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			i = copyString(&out, src, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' && src[i] != '\r' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i < len(src) {
				if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

func stripTrailingCommas(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			i = copyString(&out, src, i)
		case c == ',':
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == ']' || src[j] == '}') {
				i++
				continue
			}
			out = append(out, c)
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

// copyString copies a quoted string starting at src[i] verbatim,
// honoring backslash escapes, and returns the index past it.
func copyString(out *[]byte, src []byte, i int) int {
	quote := src[i]
	*out = append(*out, src[i])
	i++
	for i < len(src) {
		if src[i] == '\\' && i+1 < len(src) {
			*out = append(*out, src[i], src[i+1])
			i += 2
			continue
		}
		*out = append(*out, src[i])
		if src[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

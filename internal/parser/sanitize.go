package parser

import "strings"

// sanitize strips comment decoration from every line: block openers and
// closers, a leading "*" and Go "//" prefixes, each with at most one
// following space. Line breaks are preserved.
func sanitize(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = sanitizeLine(line)
	}

	return strings.Join(lines, "\n")
}

func sanitizeLine(line string) string {
	if trimmed := strings.TrimRight(line, " \t"); strings.HasSuffix(trimmed, "*/") {
		line = strings.TrimRight(strings.TrimSuffix(trimmed, "*/"), " \t")
	}

	rest := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(rest, "/**"):
		return rest[3:]
	case strings.HasPrefix(rest, "/*"):
		return rest[2:]
	case strings.HasPrefix(rest, "*"):
		return dropOneSpace(rest[1:])
	case strings.HasPrefix(rest, "//"):
		return dropOneSpace(rest[2:])
	default:
		return line
	}
}

func dropOneSpace(s string) string {
	if s != "" && (s[0] == ' ' || s[0] == '\t') {
		return s[1:]
	}

	return s
}

// tagsSection returns the text from the first line that starts with the
// sigil; the free-form description above it is ignored.
func tagsSection(doc string) string {
	offset := 0
	for _, line := range strings.SplitAfter(doc, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), string(Sigil)) {
			return doc[offset:]
		}

		offset += len(line)
	}

	return ""
}

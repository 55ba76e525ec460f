package manifest

import (
	"fmt"
	"strings"
)

// Split separates a document into its frontmatter block and body. The first
// line must be the marker; the block ends at the next line that is exactly
// the marker. Windows line endings are accepted.
func Split(content string) (block, body string, err error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != Marker {
		return "", "", fmt.Errorf("%w: document must start with a %q line", ErrMalformedMetadata, Marker)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == Marker {
			block = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return block, body, nil
		}
	}

	return "", "", fmt.Errorf("%w: closing %q line not found", ErrMalformedMetadata, Marker)
}

// ParseFields scans a frontmatter block for the top-level name and
// description keys. Only the first occurrence of each key counts; indented
// lines belong to nested values and are ignored.
func ParseFields(block string) Frontmatter {
	var fm Frontmatter
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || key != strings.TrimSpace(key) {
			continue
		}
		switch key {
		case "name":
			if !fm.HasName {
				fm.Name = unquote(strings.TrimSpace(value))
				fm.HasName = true
			}
		case "description":
			if !fm.HasDescription {
				fm.Description = unquote(strings.TrimSpace(value))
				fm.HasDescription = true
			}
		}
	}
	return fm
}

// unquote trims every leading and trailing double quote, then every leading
// and trailing single quote: "'x'" and 'x' both yield x.
func unquote(s string) string {
	return strings.Trim(strings.Trim(s, `"`), "'")
}

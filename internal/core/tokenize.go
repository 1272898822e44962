package core

import "strings"

// TokenizeLine splits a single CSV line into fields.
//
// Fields are comma-delimited. A double-quoted field may contain commas, and
// inside quotes a doubled quote ("") is a literal quote character. Quote
// characters themselves never reach the output otherwise. The function is
// total: an unterminated quote consumes the rest of the line into the current
// field, and an empty line yields a single empty field.
func TokenizeLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++ // the pair is consumed as one literal quote
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, current.String())
}

// splitLines splits decoded text into lines, dropping a trailing "\r" from each.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// trimFields trims surrounding whitespace from every field in place.
func trimFields(fields []string) []string {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// isBlankLine reports whether a line holds nothing but whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

package bindgen

import "strings"

// Assemble joins the preamble and the emitted declarations, in order, with
// one blank line between non-empty parts. The module ends with a single
// newline.
func Assemble(preamble string, parts []string) []byte {
	var sb strings.Builder

	write := func(part string) {
		part = strings.Trim(part, "\n")
		if strings.TrimSpace(part) == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(part)
	}

	write(preamble)
	for _, part := range parts {
		write(part)
	}
	sb.WriteString("\n")

	return []byte(sb.String())
}

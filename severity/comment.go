package severity

import "strings"

// StripComments removes // line and /* */ block comments, leaving string literals intact
func StripComments(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			builder.WriteByte(c)
			switch {
			case c == '\\' && quote != '`' && i+1 < len(text):
				i++
				builder.WriteByte(text[i])
			case c == quote:
				quote = 0
			}
			continue
		}
		switch {
		case c == '"' || c == '\'' || c == '`':
			quote = c
			builder.WriteByte(c)
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			end := strings.IndexByte(text[i:], '\n')
			if end == -1 {
				return builder.String()
			}
			i += end - 1
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end == -1 {
				return builder.String()
			}
			i += end + 3
			builder.WriteByte(' ')
		default:
			builder.WriteByte(c)
		}
	}
	return builder.String()
}

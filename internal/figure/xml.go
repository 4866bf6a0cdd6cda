package figure

// xml.go — minimal XML escaping that leaves existing entities alone.

import (
	"regexp"
	"strings"
)

// entityPattern matches the remainder of a character entity after its
// ampersand. Entity names are taken to be runs of up to 31 letters, decimal
// code points up to 7 digits, and hexadecimal code points up to 6 digits;
// checking against the actual entity list buys nothing for the cost.
var entityPattern = regexp.MustCompile(`^(?:[a-zA-Z]{1,31}|#(?:[0-9]{1,7}|[xX][0-9a-fA-F]{1,6}));`)

// EscapeXML escapes <, >, and any & that does not begin an entity.
func EscapeXML(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '&':
			if entityPattern.MatchString(text[i+1:]) {
				sb.WriteByte(c)
			} else {
				sb.WriteString("&amp;")
			}
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

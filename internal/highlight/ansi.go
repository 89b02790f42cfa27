package highlight

import (
	"strings"

	"github.com/fatih/color"
)

var (
	keywordColor = color.New(color.FgMagenta, color.Bold)
	stringColor  = color.New(color.FgGreen)
	numberColor  = color.New(color.FgYellow)
	commentColor = color.New(color.FgHiBlack, color.Italic)
)

// RenderANSI returns code with terminal colour escapes. When colour output
// is disabled (color.NoColor) the input is returned unchanged, except that
// an empty buffer becomes a single space.
func RenderANSI(code string) string {
	var b strings.Builder
	for _, s := range Tokenize(code) {
		switch s.Class {
		case ClassKeyword:
			b.WriteString(keywordColor.Sprint(s.Text))
		case ClassString:
			b.WriteString(stringColor.Sprint(s.Text))
		case ClassNumber:
			b.WriteString(numberColor.Sprint(s.Text))
		case ClassComment:
			b.WriteString(commentColor.Sprint(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

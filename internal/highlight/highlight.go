// Package highlight renders editor buffers as cosmetic markup.
//
// Buffers are split into typed spans by a small tokenizer. Span text is
// escaped before it is wrapped, so user text can never inject markup.
package highlight

import (
	"html"
	"strings"
)

// Class is the lexical class of a span
type Class string

const (
	ClassPlain   Class = "plain"
	ClassKeyword Class = "keyword"
	ClassString  Class = "string"
	ClassNumber  Class = "number"
	ClassComment Class = "comment"
)

// Span is a run of source text sharing one class
type Span struct {
	Class Class  `json:"class"`
	Text  string `json:"text"`
}

var keywords = map[string]struct{}{
	"function": {},
	"const":    {},
	"let":      {},
	"var":      {},
	"if":       {},
	"else":     {},
	"for":      {},
	"while":    {},
	"return":   {},
}

// Keywords returns the highlighted keyword set
func Keywords() []string {
	return []string{"function", "const", "let", "var", "if", "else", "for", "while", "return"}
}

// IsKeyword reports whether word is a highlighted keyword
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Tokenize splits code into spans. Concatenating the span texts yields the
// input, except that an empty buffer yields a single space.
func Tokenize(code string) []Span {
	if code == "" {
		code = " "
	}

	var spans []Span
	emit := func(class Class, text string) {
		if text == "" {
			return
		}
		if n := len(spans); n > 0 && class == ClassPlain && spans[n-1].Class == ClassPlain {
			spans[n-1].Text += text
			return
		}
		spans = append(spans, Span{Class: class, Text: text})
	}

	c := &cursor{src: code}
	for !c.eof() {
		start := c.off
		b := c.peek()

		switch {
		case b == '/':
			if _, b1, ok := c.peek2(); ok && b1 == '/' {
				c.skipUntil('\n')
				emit(ClassComment, code[start:c.off])
				continue
			}
			c.bump()
			emit(ClassPlain, code[start:c.off])

		case b == '"' || b == '\'':
			if end := closingQuote(code, start); end >= 0 {
				c.off = end + 1
				emit(ClassString, code[start:c.off])
				continue
			}
			c.bump()
			emit(ClassPlain, code[start:c.off])

		case isIdentStart(b):
			for !c.eof() && isIdentContinue(c.peek()) {
				c.bump()
			}
			word := code[start:c.off]
			if IsKeyword(word) {
				emit(ClassKeyword, word)
			} else {
				emit(ClassPlain, word)
			}

		case isDigit(b):
			for !c.eof() && isDigit(c.peek()) {
				c.bump()
			}
			emit(ClassNumber, code[start:c.off])

		default:
			c.bump()
			emit(ClassPlain, code[start:c.off])
		}
	}
	return spans
}

// closingQuote returns the index of the quote matching the one at open,
// searching the rest of the line only. It returns -1 when unterminated.
func closingQuote(code string, open int) int {
	q := code[open]
	for i := open + 1; i < len(code); i++ {
		switch code[i] {
		case q:
			return i
		case '\n':
			return -1
		}
	}
	return -1
}

// Render returns code as HTML markup. Non-plain spans are wrapped in
// <span class="..."> elements; all text is escaped.
func Render(code string) string {
	var b strings.Builder
	for _, s := range Tokenize(code) {
		text := html.EscapeString(s.Text)
		if s.Class == ClassPlain {
			b.WriteString(text)
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(string(s.Class))
		b.WriteString(`">`)
		b.WriteString(text)
		b.WriteString(`</span>`)
	}
	return b.String()
}

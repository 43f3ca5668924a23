// Package formatting holds the text filters widgets apply to user-supplied
// copy: emoticon conversion and automatic paragraphs.
package formatting

import (
	"fmt"
	"html"
	"strings"
)

// Smilies maps emoticon tokens to the emoji they render as.
var Smilies = map[string]string{
	":)":        "\U0001F642",
	":-)":       "\U0001F642",
	":smile:":   "\U0001F642",
	";)":        "\U0001F609",
	";-)":       "\U0001F609",
	":wink:":    "\U0001F609",
	":D":        "\U0001F600",
	":-D":       "\U0001F600",
	":grin:":    "\U0001F600",
	":(":        "\U0001F641",
	":-(":       "\U0001F641",
	":sad:":     "\U0001F641",
	":P":        "\U0001F61B",
	":-P":       "\U0001F61B",
	":o":        "\U0001F62E",
	":-o":       "\U0001F62E",
	":shock:":   "\U0001F62F",
	":|":        "\U0001F610",
	":-|":       "\U0001F610",
	":?":        "\U0001F615",
	":-?":       "\U0001F615",
	"8)":        "\U0001F60E",
	"8-)":       "\U0001F60E",
	":cool:":    "\U0001F60E",
	":x":        "\U0001F621",
	":-x":       "\U0001F621",
	":mad:":     "\U0001F621",
	":lol:":     "\U0001F606",
	":oops:":    "\U0001F633",
	":cry:":     "\U0001F625",
	":evil:":    "\U0001F47F",
	":twisted:": "\U0001F608",
	":roll:":    "\U0001F644",
	":!:":       "❗",
	":?:":       "❓",
	":idea:":    "\U0001F4A1",
	":arrow:":   "➡",
	":mrgreen:": "\U0001F606",
}

// SmileyMarkup renders the replacement markup for a known token.
func SmileyMarkup(token, emoji string) string {
	return fmt.Sprintf(`<span class="wp-smiley" role="img" aria-label="%s">%s</span>`, html.EscapeString(token), emoji)
}

// ConvertSmilies replaces emoticon tokens in text with emoji markup. Each text
// run between tags is scanned on its own: a token converts when it starts the
// run or follows whitespace, and ends the run or precedes whitespace. Tag
// contents are never touched.
func ConvertSmilies(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	inTag := false
	tokenStart := -1
	eligible := false

	flush := func(end int, spaceAfter bool) {
		if tokenStart < 0 {
			return
		}
		token := text[tokenStart:end]
		if emoji, ok := Smilies[token]; ok && eligible && spaceAfter {
			out.WriteString(SmileyMarkup(token, emoji))
		} else {
			out.WriteString(token)
		}
		tokenStart = -1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inTag:
			out.WriteByte(c)
			if c == '>' {
				inTag = false
			}
		case c == '<':
			flush(i, true)
			inTag = true
			out.WriteByte(c)
		case isSpace(c):
			flush(i, true)
			out.WriteByte(c)
		default:
			if tokenStart < 0 {
				tokenStart = i
				eligible = i == 0 || isSpace(text[i-1]) || text[i-1] == '>'
			}
		}
	}
	flush(len(text), true)

	return out.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

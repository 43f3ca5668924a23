package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSmilies(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"wink", ";)", SmileyMarkup(";)", "\U0001F609")},
		{"grin", ":-D", SmileyMarkup(":-D", "\U0001F600")},
		{"inline", "hi :) there", "hi " + SmileyMarkup(":)", "\U0001F642") + " there"},
		{"unknown token", "a:)b", "a:)b"},
		{"inside tag", `<a title=":)">x</a>`, `<a title=":)">x</a>`},
		{"whole text run", `<p>:)</p>`, `<p>` + SmileyMarkup(":)", "\U0001F642") + `</p>`},
		{"run start", `<p>:D yes</p>`, `<p>` + SmileyMarkup(":D", "\U0001F600") + ` yes</p>`},
		{"glued to text", `<p>x:)</p>`, `<p>x:)</p>`},
		{"between tags", `<b>x</b> :) <i>y</i>`, `<b>x</b> ` + SmileyMarkup(":)", "\U0001F642") + ` <i>y</i>`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertSmilies(tt.in))
		})
	}
}

func TestSmileyMarkupEscapesToken(t *testing.T) {
	assert.Contains(t, SmileyMarkup("<3", "x"), `aria-label="&lt;3"`)
}

func TestAutop(t *testing.T) {
	assert.Equal(t, "", Autop("  \n "))
	assert.Equal(t, "<p>one</p>", Autop("one"))
	assert.Equal(t, "<p>one<br />\ntwo</p>\n<p>three</p>", Autop("one\ntwo\n\nthree"))
	assert.Equal(t, `<div class="x">kept</div>`+"\n<p>text</p>", Autop("<div class=\"x\">kept</div>\n\ntext"))
	assert.Equal(t, "<p>a<br />\nb</p>", Autop("a\r\nb"))
}

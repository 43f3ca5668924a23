package widgets

import (
	"fmt"
	"regexp"
	"strings"
)

var positionalVerb = regexp.MustCompile(`%(\d+)\$s`)

// FormatWrapper substitutes a DOM id and a CSS class into a before-widget
// template. Templates may use WordPress positional verbs (%1$s), Go indexed
// verbs (%[1]s) or two bare %s verbs.
func FormatWrapper(template, id, class string) string {
	if !strings.Contains(template, "%") {
		return template
	}
	goTemplate := positionalVerb.ReplaceAllString(template, "%[$1]s")
	if !strings.Contains(goTemplate, "%[") {
		switch strings.Count(goTemplate, "%s") {
		case 0:
			return template
		case 1:
			return fmt.Sprintf(goTemplate, id)
		}
	}
	out := fmt.Sprintf(goTemplate, id, class)
	// Templates that only reference one argument leave an EXTRA marker behind.
	if i := strings.Index(out, "%!(EXTRA"); i >= 0 {
		out = out[:i]
	}
	return out
}

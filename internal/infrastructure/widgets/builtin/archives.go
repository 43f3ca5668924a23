package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

type Archives struct {
	base
	lib *Library
}

func NewArchives(lib *Library) *Archives {
	return &Archives{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeArchives,
			Name:        "Archives",
			ClassName:   "widget_archive",
			Description: "A monthly archive of your site's Posts.",
		}},
		lib: lib,
	}
}

func (a *Archives) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	heading := title(s, "Archives")
	showCount := s.Bool("count")

	var b strings.Builder
	if s.Bool("dropdown") {
		selectID := "archives-dropdown"
		if args.WidgetID != "" {
			selectID += "-" + args.WidgetID
		}
		fmt.Fprintf(&b, `<label class="screen-reader-text" for="%s">%s</label>`, selectID, heading)
		fmt.Fprintf(&b, `<select id="%s" name="archive-dropdown"><option value="">Select Month</option>`, selectID)
		for _, m := range a.lib.Months() {
			label := fmt.Sprintf("%s %d", m.Month, m.Year)
			if showCount {
				label += fmt.Sprintf("&nbsp;(%d)", m.Count)
			}
			fmt.Fprintf(&b, `<option value="%s">%s</option>`, archiveURL(m), label)
		}
		b.WriteString(`</select>`)
	} else {
		b.WriteString(`<ul>`)
		for _, m := range a.lib.Months() {
			fmt.Fprintf(&b, `<li><a href="%s">%s %d</a>`, archiveURL(m), m.Month, m.Year)
			if showCount {
				fmt.Fprintf(&b, `&nbsp;(%d)`, m.Count)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}

	return writeWidget(w, args, heading, b.String())
}

func archiveURL(m MonthCount) string {
	return fmt.Sprintf("/%d/%02d/", m.Year, int(m.Month))
}

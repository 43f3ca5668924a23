package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

type Categories struct {
	base
	lib *Library
}

func NewCategories(lib *Library) *Categories {
	return &Categories{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeCategories,
			Name:        "Categories",
			ClassName:   "widget_categories",
			Description: "A list or dropdown of categories.",
		}},
		lib: lib,
	}
}

func (c *Categories) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	heading := title(s, "Categories")
	showCount := s.Bool("count")
	hierarchical := s.Bool("hierarchical")
	counts := c.lib.CategoryCounts()

	children := make(map[int][]content.Category)
	for _, cat := range c.lib.Categories {
		parent := cat.ParentID
		if !hierarchical {
			parent = 0
		}
		children[parent] = append(children[parent], cat)
	}

	var b strings.Builder
	if s.Bool("dropdown") {
		fmt.Fprintf(&b, `<label class="screen-reader-text" for="cat">%s</label>`, heading)
		b.WriteString(`<select name="cat" id="cat" class="postform"><option value="-1">Select Category</option>`)
		var walk func(parent, depth int)
		walk = func(parent, depth int) {
			for _, cat := range children[parent] {
				label := strings.Repeat("&nbsp;&nbsp;&nbsp;", depth) + esc(cat.Name)
				if showCount {
					label += fmt.Sprintf("&nbsp;&nbsp;(%d)", counts[cat.Slug])
				}
				fmt.Fprintf(&b, `<option class="level-%d" value="%d">%s</option>`, depth, cat.ID, label)
				walk(cat.ID, depth+1)
			}
		}
		walk(0, 0)
		b.WriteString(`</select>`)
	} else {
		var walk func(parent int)
		walk = func(parent int) {
			for _, cat := range children[parent] {
				fmt.Fprintf(&b, `<li class="cat-item cat-item-%d"><a href="/category/%s/">%s</a>`, cat.ID, cat.Slug, esc(cat.Name))
				if showCount {
					fmt.Fprintf(&b, ` (%d)`, counts[cat.Slug])
				}
				if len(children[cat.ID]) > 0 {
					b.WriteString(`<ul class="children">`)
					walk(cat.ID)
					b.WriteString(`</ul>`)
				}
				b.WriteString(`</li>`)
			}
		}
		b.WriteString(`<ul>`)
		walk(0)
		b.WriteString(`</ul>`)
	}

	return writeWidget(w, args, heading, b.String())
}

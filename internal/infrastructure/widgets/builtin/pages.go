package builtin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

type Pages struct {
	base
	lib *Library
}

func NewPages(lib *Library) *Pages {
	return &Pages{
		base: base{opts: widgets.Options{
			ID:          widgets.TypePages,
			Name:        "Pages",
			ClassName:   "widget_pages",
			Description: "A list of your site's Pages.",
		}},
		lib: lib,
	}
}

func (p *Pages) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	excluded := make(map[int]bool)
	for _, raw := range strings.Split(s.String("exclude", ""), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			excluded[id] = true
		}
	}

	children := make(map[int][]content.Page)
	for _, page := range p.lib.Pages {
		if !excluded[page.ID] {
			children[page.ParentID] = append(children[page.ParentID], page)
		}
	}
	for parent := range children {
		sortPages(children[parent], s.String("sortby", "menu_order"))
	}

	var b strings.Builder
	var walk func(parent int)
	walk = func(parent int) {
		for _, page := range children[parent] {
			fmt.Fprintf(&b, `<li class="page_item page-item-%d"><a href="/%s/">%s</a>`, page.ID, page.Slug, esc(page.Title))
			if len(children[page.ID]) > 0 {
				b.WriteString(`<ul class="children">`)
				walk(page.ID)
				b.WriteString(`</ul>`)
			}
			b.WriteString(`</li>`)
		}
	}
	b.WriteString(`<ul>`)
	walk(0)
	b.WriteString(`</ul>`)

	return writeWidget(w, args, title(s, "Pages"), b.String())
}

func sortPages(pages []content.Page, sortBy string) {
	sort.SliceStable(pages, func(i, j int) bool {
		switch sortBy {
		case "post_title":
			return pages[i].Title < pages[j].Title
		case "ID":
			return pages[i].ID < pages[j].ID
		default:
			if pages[i].MenuOrder != pages[j].MenuOrder {
				return pages[i].MenuOrder < pages[j].MenuOrder
			}
			return pages[i].Title < pages[j].Title
		}
	})
}

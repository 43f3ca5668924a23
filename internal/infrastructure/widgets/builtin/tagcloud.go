package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

const (
	tagCloudSmallest = 8.0
	tagCloudLargest  = 22.0
)

type TagCloud struct {
	base
	lib *Library
}

func NewTagCloud(lib *Library) *TagCloud {
	return &TagCloud{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeTagCloud,
			Name:        "Tag Cloud",
			ClassName:   "widget_tag_cloud",
			Description: "A cloud of your most used tags.",
		}},
		lib: lib,
	}
}

func (t *TagCloud) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	taxonomy := s.String("taxonomy", "post_tag")

	var terms []TagCount
	defaultTitle := "Tags"
	prefix := "/tag/"
	if taxonomy == "category" {
		defaultTitle = "Categories"
		prefix = "/category/"
		counts := t.lib.CategoryCounts()
		for _, cat := range t.lib.Categories {
			if counts[cat.Slug] > 0 {
				terms = append(terms, TagCount{Name: cat.Name, Slug: cat.Slug, Count: counts[cat.Slug]})
			}
		}
	} else {
		terms = t.lib.Tags()
	}

	minCount, maxCount := 0, 0
	for i, term := range terms {
		if i == 0 || term.Count < minCount {
			minCount = term.Count
		}
		if term.Count > maxCount {
			maxCount = term.Count
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="tagcloud">`)
	for i, term := range terms {
		if i > 0 {
			b.WriteString("\n")
		}
		size := tagCloudSmallest
		if maxCount > minCount {
			size += float64(term.Count-minCount) * (tagCloudLargest - tagCloudSmallest) / float64(maxCount-minCount)
		}
		items := "items"
		if term.Count == 1 {
			items = "item"
		}
		fmt.Fprintf(&b, `<a href="%s%s/" class="tag-cloud-link" style="font-size: %.4gpt;" aria-label="%s (%d %s)">%s</a>`,
			prefix, term.Slug, size, esc(term.Name), term.Count, items, esc(term.Name))
	}
	b.WriteString(`</div>`)

	return writeWidget(w, args, title(s, defaultTitle), b.String())
}

package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
)

// RecentPosts lists the newest posts. When the display args carry a widget
// id, the rendered output is cached under that id, unless the id carries
// widgets.CacheBustPrefix.
type RecentPosts struct {
	base
	lib   *Library
	cache *caching.Store[string]
}

func NewRecentPosts(lib *Library, cache *caching.Store[string]) *RecentPosts {
	return &RecentPosts{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeRecentPosts,
			Name:        "Recent Posts",
			ClassName:   "widget_recent_entries",
			Description: "Your site's most recent Posts.",
		}},
		lib:   lib,
		cache: cache,
	}
}

func (r *RecentPosts) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	cacheKey := args.WidgetID
	if strings.HasPrefix(cacheKey, widgets.CacheBustPrefix) {
		cacheKey = ""
	}
	if r.cache != nil && cacheKey != "" {
		if out, ok := r.cache.Get(cacheKey); ok {
			_, err := io.WriteString(w, out)
			return err
		}
	}

	number := s.Int("number", 5)
	if number <= 0 {
		number = 5
	}

	var b strings.Builder
	b.WriteString(`<ul>`)
	for _, p := range r.lib.RecentPosts(number) {
		fmt.Fprintf(&b, `<li><a href="/%s/">%s</a>`, p.Slug, esc(p.Title))
		if s.Bool("show_date") {
			fmt.Fprintf(&b, ` <span class="post-date">%s</span>`, p.Published.Format("January 2, 2006"))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)

	var out strings.Builder
	if err := writeWidget(&out, args, title(s, "Recent Posts"), b.String()); err != nil {
		return err
	}
	if r.cache != nil && cacheKey != "" {
		r.cache.Set(cacheKey, out.String())
	}

	_, err := io.WriteString(w, out.String())
	return err
}

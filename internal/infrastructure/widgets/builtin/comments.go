package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

type RecentComments struct {
	base
	lib *Library
}

func NewRecentComments(lib *Library) *RecentComments {
	return &RecentComments{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeRecentComments,
			Name:        "Recent Comments",
			ClassName:   "widget_recent_comments",
			Description: "Your site's most recent comments.",
		}},
		lib: lib,
	}
}

func (r *RecentComments) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	number := s.Int("number", 5)
	if number <= 0 {
		number = 5
	}

	var b strings.Builder
	b.WriteString(`<ul id="recentcomments">`)
	for _, c := range r.lib.RecentComments(number) {
		post, ok := r.lib.Post(c.PostID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, `<li class="recentcomments"><span class="comment-author-link">%s</span> on <a href="/%s/">%s</a></li>`,
			esc(c.Author), post.Slug, esc(post.Title))
	}
	b.WriteString(`</ul>`)

	return writeWidget(w, args, title(s, "Recent Comments"), b.String())
}

package builtin

import (
	"context"
	"io"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

const metaLinks = `<ul>` +
	`<li><a href="/api/v1/auth/login">Log in</a></li>` +
	`<li><a href="/feed/">Entries feed</a></li>` +
	`<li><a href="/comments/feed/">Comments feed</a></li>` +
	`<li><a href="https://wordpress.org/">WordPress.org</a></li>` +
	`</ul>`

type Meta struct {
	base
}

func NewMeta() *Meta {
	return &Meta{base: base{opts: widgets.Options{
		ID:          widgets.TypeMeta,
		Name:        "Meta",
		ClassName:   "widget_meta",
		Description: "Login, RSS, & WordPress.org links.",
	}}}
}

func (m *Meta) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	return writeWidget(w, args, title(s, "Meta"), metaLinks)
}

// Package builtin implements the stock widget types a site ships with. The
// Monster widget renders these; sidebars may also place them directly.
package builtin

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

// Registrar accepts widget registrations.
type Registrar interface {
	Register(w widgets.Widget)
}

// MenuReader is the read side of the menu repository.
type MenuReader interface {
	FindByID(ctx context.Context, id string) (*content.MenuNode, error)
	FindAll(ctx context.Context) ([]*content.MenuNode, error)
}

// Deps carries what the built-in widgets read from.
type Deps struct {
	Library    *Library
	Menus      MenuReader
	Feeds      FeedFetcher
	PostsCache *caching.Store[string]
	Logger     *logging.ChanneledLogger

	// EnableLinks registers the legacy links widget.
	EnableLinks bool
}

// RegisterAll registers every built-in widget type with r.
func RegisterAll(r Registrar, deps Deps) {
	if deps.Library == nil {
		deps.Library = SampleLibrary()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewDiscardLogger()
	}

	r.Register(NewArchives(deps.Library))
	r.Register(NewCalendar(deps.Library))
	r.Register(NewCategories(deps.Library))
	r.Register(NewPages(deps.Library))
	r.Register(NewMeta())
	r.Register(NewRecentComments(deps.Library))
	r.Register(NewRecentPosts(deps.Library, deps.PostsCache))
	r.Register(NewRSS(deps.Feeds, deps.Logger))
	r.Register(NewSearch())
	r.Register(NewText())
	r.Register(NewTagCloud(deps.Library))
	if deps.Menus != nil {
		r.Register(NewNavMenu(deps.Menus, deps.Logger))
	}
	if deps.EnableLinks && deps.Menus != nil {
		r.Register(NewLinks(deps.Menus, deps.Logger))
	}
}

type base struct {
	opts widgets.Options
}

func (b base) Options() widgets.Options {
	return b.opts
}

// title returns the escaped instance title, or def when none is set.
func title(s widgets.Settings, def string) string {
	t := strings.TrimSpace(s.String("title", ""))
	if t == "" {
		t = def
	}
	return html.EscapeString(t)
}

// writeWidget writes one wrapped widget. titleHTML must already be escaped.
func writeWidget(w io.Writer, args widgets.DisplayArgs, titleHTML, body string) error {
	var b strings.Builder
	b.WriteString(args.BeforeWidget)
	if titleHTML != "" {
		b.WriteString(args.BeforeTitle)
		b.WriteString(titleHTML)
		b.WriteString(args.AfterTitle)
	}
	b.WriteString(body)
	b.WriteString(args.AfterWidget)

	_, err := io.WriteString(w, b.String())
	return err
}

func esc(s string) string {
	return html.EscapeString(s)
}

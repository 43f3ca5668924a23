package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

// Links is the legacy blogroll widget. Every stored menu with links renders
// as its own wrapped list, titled with the menu name.
type Links struct {
	base
	menus  MenuReader
	logger *logging.ChanneledLogger
}

func NewLinks(menus MenuReader, logger *logging.ChanneledLogger) *Links {
	return &Links{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeLinks,
			Name:        "Links",
			ClassName:   "widget_links",
			Description: "Your blogroll",
		}},
		menus:  menus,
		logger: logger,
	}
}

func (l *Links) Render(ctx context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	menus, err := l.menus.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load link categories: %w", err)
	}

	showName := s.Bool("name") || !s.Bool("images")
	showDescription := s.Bool("description")

	for _, menu := range menus {
		if len(menu.Links) == 0 {
			continue
		}

		var b strings.Builder
		b.WriteString(`<ul class="xoxo blogroll">`)
		for _, link := range sortedLinks(menu.Links) {
			b.WriteString(`<li><a href="` + esc(link.URL) + `">`)
			if showName {
				b.WriteString(esc(link.Name))
			}
			b.WriteString(`</a>`)
			if showDescription && link.Description != "" {
				b.WriteString("\n" + esc(link.Description))
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)

		if err := writeWidget(w, args, esc(menu.Title), b.String()); err != nil {
			return err
		}
	}

	l.logger.Widgets().Debug("Links widget rendered", "categories", len(menus))
	return nil
}

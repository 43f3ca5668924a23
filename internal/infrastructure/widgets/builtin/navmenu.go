package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

// NavMenu renders one stored navigation menu. A missing or unknown menu
// renders nothing.
type NavMenu struct {
	base
	menus  MenuReader
	logger *logging.ChanneledLogger
}

func NewNavMenu(menus MenuReader, logger *logging.ChanneledLogger) *NavMenu {
	return &NavMenu{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeNavMenu,
			Name:        "Navigation Menu",
			ClassName:   "widget_nav_menu",
			Description: "Add a navigation menu to your sidebar.",
		}},
		menus:  menus,
		logger: logger,
	}
}

func (n *NavMenu) Render(ctx context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	menuID := s.String("nav_menu", "")
	if menuID == "" {
		return nil
	}

	menu, err := n.menus.FindByID(ctx, menuID)
	if errors.Is(err, content.ErrMenuNotFound) {
		n.logger.Menus().Debug("Nav menu widget references unknown menu", "menuId", menuID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load menu %s: %w", menuID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="menu-%s-container"><ul id="menu-%s" class="menu">`, esc(menu.Slug), esc(menu.Slug))
	for _, link := range sortedLinks(menu.Links) {
		fmt.Fprintf(&b, `<li id="menu-item-%s" class="menu-item"><a href="%s">%s</a></li>`,
			esc(link.ID), esc(link.URL), esc(link.Name))
	}
	b.WriteString(`</ul></div>`)

	return writeWidget(w, args, title(s, ""), b.String())
}

func sortedLinks(links []*content.MenuLink) []*content.MenuLink {
	out := make([]*content.MenuLink, len(links))
	copy(out, links)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}

package monster

import (
	"context"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
)

// BestNavMenu returns the menu holding the most links, or nil when there are
// no menus, the lookup fails, or every menu is empty. When several menus share
// the highest count the one listed last wins.
func (m *Widget) BestNavMenu(ctx context.Context) *content.NavMenuSummary {
	if m.menus == nil {
		return nil
	}

	menus, err := m.menus.NavMenus(ctx)
	if err != nil {
		m.logger.Menus().Warn("Nav menu lookup failed", "error", err)
		return nil
	}

	var best *content.NavMenuSummary
	for i := range menus {
		if best == nil || menus[i].LinkCount >= best.LinkCount {
			best = &menus[i]
		}
	}
	if best == nil || best.LinkCount <= 0 {
		return nil
	}

	selected := *best
	return &selected
}

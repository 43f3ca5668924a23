package monster

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

// Render writes every configured sub-widget to w in order. Each sub-widget
// gets the sidebar's before-widget template formatted with a unique
// placeholder id and its own CSS class. A failing sub-widget is logged and
// skipped; it never stops the remaining ones.
func (m *Widget) Render(ctx context.Context, w io.Writer, args widgets.DisplayArgs, _ widgets.Settings) error {
	if m.widgets == nil {
		m.logger.Render().Warn("Monster widget has no widget registry", "sidebarId", args.SidebarID)
		return nil
	}

	start := time.Now()

	base := args
	if m.sidebars != nil {
		if registered, ok := m.sidebars.Lookup(args.SidebarID); ok {
			base = registered
		}
	}
	beforeWidget := base.BeforeWidget

	list := m.WidgetConfig(ctx)
	for _, spec := range list {
		n := m.counter.Next()

		itemArgs := base
		if spec.Type == widgets.TypeRecentPosts {
			itemArgs.WidgetID = fmt.Sprintf("%s%d", RecentPostsCachePrefix, n)
		}
		itemArgs.BeforeWidget = widgets.FormatWrapper(
			beforeWidget,
			fmt.Sprintf("%s%d", PlaceholderPrefix, n),
			m.WidgetClass(spec.Type),
		)

		err := m.widgets.RenderWidget(ctx, w, spec.Type, spec.Settings, itemArgs)
		if err != nil {
			m.logger.Render().Warn("Sub-widget render failed",
				"widgetType", spec.Type,
				"placeholder", n,
				"sidebarId", args.SidebarID,
				"error", err)
		}
		if m.observer != nil {
			m.observer.SubWidgetRendered(spec.Type, err)
		}
	}

	m.logger.Render().Debug("Monster widget rendered",
		"sidebarId", args.SidebarID,
		"widgets", len(list),
		"nextPlaceholder", m.counter.Current(),
		"duration", time.Since(start))
	return nil
}

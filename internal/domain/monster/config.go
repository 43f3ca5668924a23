package monster

import (
	"context"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

// WidgetConfig builds the ordered sub-widget list: thirteen fixed entries,
// then a nav menu entry when a non-empty menu exists, then a links entry when
// the links widget is registered. The result passes through ConfigFilters.
func (m *Widget) WidgetConfig(ctx context.Context) widgets.ConfigList {
	list := widgets.ConfigList{
		{Type: widgets.TypeArchives, Settings: widgets.Settings{
			"title":    m.t("Archives List"),
			"count":    1,
			"dropdown": 0,
		}},
		{Type: widgets.TypeArchives, Settings: widgets.Settings{
			"title":    m.t("Archives Dropdown"),
			"count":    1,
			"dropdown": 1,
		}},
		{Type: widgets.TypeCalendar, Settings: widgets.Settings{
			"title": m.t("Calendar"),
		}},
		{Type: widgets.TypeCategories, Settings: widgets.Settings{
			"title":        m.t("Categories List"),
			"count":        1,
			"hierarchical": 1,
			"dropdown":     0,
		}},
		{Type: widgets.TypeCategories, Settings: widgets.Settings{
			"title":        m.t("Categories Dropdown"),
			"count":        1,
			"hierarchical": 1,
			"dropdown":     1,
		}},
		{Type: widgets.TypePages, Settings: widgets.Settings{
			"title":   m.t("Pages"),
			"sortby":  "menu_order",
			"exclude": "",
		}},
		{Type: widgets.TypeMeta, Settings: widgets.Settings{
			"title": m.t("Meta"),
		}},
		{Type: widgets.TypeRecentComments, Settings: widgets.Settings{
			"title":  m.t("Recent Comments"),
			"number": 7,
		}},
		{Type: widgets.TypeRecentPosts, Settings: widgets.Settings{
			"title":  m.t("Recent Posts"),
			"number": 1,
		}},
		{Type: widgets.TypeRSS, Settings: widgets.Settings{
			"title":        m.t("RSS"),
			"url":          RSSFeedURL,
			"items":        10,
			"show_author":  true,
			"show_date":    true,
			"show_summary": true,
		}},
		{Type: widgets.TypeSearch, Settings: widgets.Settings{
			"title": m.t("Search"),
		}},
		{Type: widgets.TypeText, Settings: widgets.Settings{
			"title":  m.t("Text"),
			"text":   m.BreakerText(),
			"filter": true,
		}},
		{Type: widgets.TypeTagCloud, Settings: widgets.Settings{
			"title":    m.t("Tag Cloud"),
			"taxonomy": "post_tag",
		}},
	}

	if menu := m.BestNavMenu(ctx); menu != nil {
		list = append(list, widgets.Spec{Type: widgets.TypeNavMenu, Settings: widgets.Settings{
			"title":    m.t("Nav Menu"),
			"nav_menu": menu.ID,
		}})
	}

	if m.widgets != nil && m.widgets.Has(widgets.TypeLinks) {
		list = append(list, widgets.Spec{Type: widgets.TypeLinks, Settings: widgets.Settings{
			"title":       m.t("Links"),
			"description": 1,
			"name":        1,
			"rating":      1,
			"images":      1,
		}})
	}

	return m.configFilters.Apply(list)
}

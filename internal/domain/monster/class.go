package monster

import "github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"

// WidgetClass returns the CSS class a registered widget type declares, or ""
// when the type is not registered or declares none.
func (m *Widget) WidgetClass(id widgets.TypeID) string {
	if m.widgets == nil {
		return ""
	}
	w, ok := m.widgets.Lookup(id)
	if !ok || w == nil {
		return ""
	}
	return w.Options().ClassName
}

package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/domain/monster"
	"github.com/gin-gonic/gin"
)

// WidgetLister lists registered widget types.
type WidgetLister interface {
	All() []widgets.Options
}

// MonsterHandlers exposes the composite widget's configuration and breaker
// text.
type MonsterHandlers struct {
	monster *monster.Widget
	widgets WidgetLister
}

func NewMonsterHandlers(m *monster.Widget, registry WidgetLister) *MonsterHandlers {
	return &MonsterHandlers{monster: m, widgets: registry}
}

// GetConfig returns the filtered sub-widget configuration list.
func (h *MonsterHandlers) GetConfig(c *gin.Context) {
	cfg := h.monster.WidgetConfig(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"widgets": cfg,
		"count":   len(cfg),
		"next":    h.monster.Counter().Current(),
	})
}

func (h *MonsterHandlers) GetBreaker(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.monster.BreakerText()))
}

type widgetInfo struct {
	widgets.Options
	WrapperClass string `json:"wrapperClass"`
}

// GetWidgets lists registered widget types with the class the Monster
// widget wraps each one in.
func (h *MonsterHandlers) GetWidgets(c *gin.Context) {
	all := h.widgets.All()
	out := make([]widgetInfo, 0, len(all))
	for _, opts := range all {
		out = append(out, widgetInfo{Options: opts, WrapperClass: h.monster.WidgetClass(opts.ID)})
	}
	c.JSON(http.StatusOK, gin.H{"widgets": out, "count": len(out)})
}

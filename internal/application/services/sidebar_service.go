package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

// SidebarStore is the sidebar registry as seen by the renderer.
type SidebarStore interface {
	Get(id string) (*content.Sidebar, bool)
	IDs() []string
}

// WidgetRenderer is the widget registry as seen by the renderer.
type WidgetRenderer interface {
	Lookup(id widgets.TypeID) (widgets.Widget, bool)
	RenderWidget(ctx context.Context, w io.Writer, id widgets.TypeID, settings widgets.Settings, args widgets.DisplayArgs) error
}

// RenderObserver receives sidebar render timings.
type RenderObserver interface {
	SidebarRendered(sidebarID string, duration time.Duration, err error)
}

// SidebarService renders every widget placed in a sidebar.
type SidebarService struct {
	sidebars SidebarStore
	widgets  WidgetRenderer
	observer RenderObserver
	logger   *logging.ChanneledLogger
}

func NewSidebarService(sidebars SidebarStore, widgets WidgetRenderer, observer RenderObserver, logger *logging.ChanneledLogger) *SidebarService {
	return &SidebarService{
		sidebars: sidebars,
		widgets:  widgets,
		observer: observer,
		logger:   logger,
	}
}

// List returns every registered sidebar in registration order.
func (s *SidebarService) List() []*content.Sidebar {
	var out []*content.Sidebar
	for _, id := range s.sidebars.IDs() {
		if sb, ok := s.sidebars.Get(id); ok {
			out = append(out, sb)
		}
	}
	return out
}

// RenderSidebar writes each placed widget of sidebar id to w. Placement n of
// type t gets widget id "t-n".
func (s *SidebarService) RenderSidebar(ctx context.Context, w io.Writer, id string) (err error) {
	start := time.Now()
	defer func() {
		if s.observer != nil {
			s.observer.SidebarRendered(id, time.Since(start), err)
		}
	}()

	sb, ok := s.sidebars.Get(id)
	if !ok {
		return fmt.Errorf("sidebar %s: %w", id, content.ErrSidebarNotFound)
	}

	for i, placement := range sb.Widgets {
		args := sb.DisplayArgs()
		args.WidgetID = fmt.Sprintf("%s-%d", placement.Type, i+1)

		class := ""
		if widget, ok := s.widgets.Lookup(placement.Type); ok {
			args.WidgetName = widget.Options().Name
			class = widget.Options().ClassName
		}
		args.BeforeWidget = widgets.FormatWrapper(sb.BeforeWidget, args.WidgetID, class)

		if err := s.widgets.RenderWidget(ctx, w, placement.Type, placement.Settings, args); err != nil {
			return fmt.Errorf("failed to render %s in sidebar %s: %w", args.WidgetID, id, err)
		}
	}

	s.logger.Render().Debug("Sidebar rendered", "sidebarId", id, "widgets", len(sb.Widgets), "duration", time.Since(start))
	return nil
}

// RenderSidebarHTML renders sidebar id to a string.
func (s *SidebarService) RenderSidebarHTML(ctx context.Context, id string) (string, error) {
	var buf bytes.Buffer
	if err := s.RenderSidebar(ctx, &buf, id); err != nil {
		return "", err
	}
	return buf.String(), nil
}

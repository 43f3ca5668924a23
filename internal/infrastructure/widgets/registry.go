// Package widgets provides the widget-type registry and the per-widget render
// entry point used by sidebars and by composite widgets.
package widgets

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

const (
	defaultBeforeWidget = `<div class="widget %s">`
	defaultAfterWidget  = `</div>`
	defaultBeforeTitle  = `<h2 class="widgettitle">`
	defaultAfterTitle   = `</h2>`
)

// Registry maps widget type ids to registered widgets.
type Registry struct {
	mu      sync.RWMutex
	widgets map[widgets.TypeID]widgets.Widget
	order   []widgets.TypeID
	logger  *logging.ChanneledLogger
}

// NewRegistry creates an empty widget registry.
func NewRegistry(logger *logging.ChanneledLogger) *Registry {
	return &Registry{
		widgets: make(map[widgets.TypeID]widgets.Widget),
		logger:  logger,
	}
}

// Register adds w under its declared id, replacing any earlier registration.
func (r *Registry) Register(w widgets.Widget) {
	id := w.Options().ID

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[id]; !exists {
		r.order = append(r.order, id)
	}
	r.widgets[id] = w
	r.logger.Widgets().Debug("Widget type registered", "widgetType", id)
}

// Unregister removes a widget type.
func (r *Registry) Unregister(id widgets.TypeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[id]; !exists {
		return
	}
	delete(r.widgets, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Lookup(id widgets.TypeID) (widgets.Widget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[id]
	return w, ok
}

func (r *Registry) Has(id widgets.TypeID) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Keys returns the registered ids in registration order.
func (r *Registry) Keys() []widgets.TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]widgets.TypeID, len(r.order))
	copy(keys, r.order)
	return keys
}

// All returns the options of every registered widget in registration order.
func (r *Registry) All() []widgets.Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]widgets.Options, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.widgets[id].Options())
	}
	return out
}

// RenderWidget renders a single widget outside of any sidebar placement.
// An unregistered id renders nothing and is not an error.
func (r *Registry) RenderWidget(ctx context.Context, w io.Writer, id widgets.TypeID, settings widgets.Settings, args widgets.DisplayArgs) error {
	widget, ok := r.Lookup(id)
	if !ok {
		r.logger.Widgets().Debug("Render skipped for unregistered widget type", "widgetType", id)
		return nil
	}

	if args.BeforeWidget == "" {
		args.BeforeWidget = fmt.Sprintf(defaultBeforeWidget, widget.Options().ClassName)
	}
	if args.AfterWidget == "" {
		args.AfterWidget = defaultAfterWidget
	}
	if args.BeforeTitle == "" {
		args.BeforeTitle = defaultBeforeTitle
	}
	if args.AfterTitle == "" {
		args.AfterTitle = defaultAfterTitle
	}

	if settings == nil {
		settings = widgets.Settings{}
	}

	return widget.Render(ctx, w, args, settings)
}

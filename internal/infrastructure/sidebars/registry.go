// Package sidebars provides the sidebar registry: the named placement regions
// of the preview theme together with their wrapper templates.
package sidebars

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"gopkg.in/yaml.v3"
)

// DefaultSidebarID is registered when no sidebars file exists.
const DefaultSidebarID = "sidebar-1"

type fileFormat struct {
	Sidebars []*content.Sidebar `yaml:"sidebars"`
}

// Registry holds registered sidebars keyed by id.
type Registry struct {
	mu       sync.RWMutex
	sidebars map[string]*content.Sidebar
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{sidebars: make(map[string]*content.Sidebar)}
}

// DefaultSidebar is the fallback sidebar: a single Monster placement.
func DefaultSidebar() *content.Sidebar {
	return &content.Sidebar{
		ID:           DefaultSidebarID,
		Name:         "Main Sidebar",
		Description:  "Widgets in this area are shown in the preview sidebar.",
		BeforeWidget: `<aside id="%1$s" class="widget %2$s">`,
		AfterWidget:  `</aside>`,
		BeforeTitle:  `<h3 class="widget-title">`,
		AfterTitle:   `</h3>`,
		Widgets:      []content.Placement{{Type: widgets.TypeMonster}},
	}
}

// LoadFile builds a registry from a YAML sidebars file. A missing file yields
// a registry holding only DefaultSidebar.
func LoadFile(path string, logger *logging.ChanneledLogger) (*Registry, error) {
	r := NewRegistry()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Widgets().Info("No sidebars file found, registering default sidebar", "path", path)
		r.Register(DefaultSidebar())
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sidebars file %s: %w", path, err)
	}

	if err := r.LoadYAML(data); err != nil {
		return nil, fmt.Errorf("failed to parse sidebars file %s: %w", path, err)
	}

	logger.Widgets().Info("Sidebars loaded", "path", path, "count", len(r.order))
	return r, nil
}

// LoadYAML registers every sidebar defined in data.
func (r *Registry) LoadYAML(data []byte) error {
	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return err
	}
	for i, sb := range parsed.Sidebars {
		if sb == nil || sb.ID == "" {
			return fmt.Errorf("sidebar %d has no id", i)
		}
		r.Register(sb)
	}
	return nil
}

// Register adds or replaces a sidebar.
func (r *Registry) Register(sb *content.Sidebar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sidebars[sb.ID]; !exists {
		r.order = append(r.order, sb.ID)
	}
	r.sidebars[sb.ID] = sb
}

// Get returns the full sidebar definition.
func (r *Registry) Get(id string) (*content.Sidebar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sb, ok := r.sidebars[id]
	return sb, ok
}

// Lookup returns the sidebar's raw display arguments.
func (r *Registry) Lookup(id string) (widgets.DisplayArgs, bool) {
	sb, ok := r.Get(id)
	if !ok {
		return widgets.DisplayArgs{}, false
	}
	return sb.DisplayArgs(), true
}

// IDs returns sidebar ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
